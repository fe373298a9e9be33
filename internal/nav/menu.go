package nav

import "time"

// Menu is the compact navigation menu: Closed or Open for the page lifetime.
type Menu struct {
	open bool
}

// IsOpen reports the menu state.
func (m *Menu) IsOpen() bool {
	return m.open
}

// Toggle flips the menu.
func (m *Menu) Toggle() {
	m.open = !m.open
}

// Close collapses the menu after an entry is chosen.
func (m *Menu) Close() {
	m.open = false
}

// DefaultScrollThrottle bounds how often scroll samples are recomputed.
const DefaultScrollThrottle = 50 * time.Millisecond

// Throttle coalesces bursts of scroll notifications into one recompute per
// interval. It carries no timer; the host schedules one when Request says so.
type Throttle struct {
	Interval time.Duration
	pending  bool
}

// Request records a notification. It returns true when the caller must
// schedule a recompute after Interval.
func (t *Throttle) Request() bool {
	if t.pending {
		return false
	}
	t.pending = true
	return true
}

// Fire marks the scheduled recompute as done.
func (t *Throttle) Fire() {
	t.pending = false
}

// Pending reports whether a recompute is scheduled.
func (t *Throttle) Pending() bool {
	return t.pending
}
