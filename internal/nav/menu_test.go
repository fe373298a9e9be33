package nav

import "testing"

func TestMenuStateMachine(t *testing.T) {
	tr := NewTracker(DefaultOptions())
	if tr.State().MenuOpen {
		t.Fatalf("menu must start closed")
	}
	if !tr.ToggleMenu().MenuOpen {
		t.Fatalf("toggle must open the menu")
	}
	if tr.ToggleMenu().MenuOpen {
		t.Fatalf("second toggle must close the menu")
	}
	tr.ToggleMenu()
	if tr.Select(Skills).MenuOpen {
		t.Fatalf("selecting an entry must close the menu")
	}
}

func TestThrottleCoalesces(t *testing.T) {
	var th Throttle
	if !th.Request() {
		t.Fatalf("first request must schedule")
	}
	for i := 0; i < 5; i++ {
		if th.Request() {
			t.Fatalf("requests while pending must not schedule")
		}
	}
	th.Fire()
	if th.Pending() {
		t.Fatalf("expected no pending recompute after fire")
	}
	if !th.Request() {
		t.Fatalf("request after fire must schedule again")
	}
}
