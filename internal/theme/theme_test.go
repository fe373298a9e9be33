package theme

import (
	"context"
	"errors"
	"testing"
)

type memKV struct {
	values   map[string]string
	getErr   error
	setErr   error
	setCalls int
}

func (m *memKV) GetPreference(_ context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memKV) SetPreference(_ context.Context, key, value string) error {
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}

func TestLoadDefaultsToLight(t *testing.T) {
	s := Load(context.Background(), &memKV{}, nil)
	if s.IsDark() {
		t.Fatalf("expected light theme by default")
	}
}

func TestLoadReadsPersistedDark(t *testing.T) {
	kv := &memKV{values: map[string]string{PreferenceKey: "dark"}}
	s := Load(context.Background(), kv, nil)
	if !s.IsDark() {
		t.Fatalf("expected dark theme from storage")
	}
	if kv.setCalls != 0 {
		t.Fatalf("load must not write, got %d writes", kv.setCalls)
	}
}

func TestLoadReadErrorFallsBackToLight(t *testing.T) {
	s := Load(context.Background(), &memKV{getErr: errors.New("boom")}, nil)
	if s.IsDark() {
		t.Fatalf("expected light theme on read error")
	}
}

func TestToggleFlipsAndPersists(t *testing.T) {
	kv := &memKV{}
	s := Load(context.Background(), kv, nil)
	if got := s.Toggle(context.Background()); !got {
		t.Fatalf("expected toggle to return dark")
	}
	if kv.values[PreferenceKey] != "dark" {
		t.Fatalf("expected dark persisted, got %q", kv.values[PreferenceKey])
	}
	if got := s.Toggle(context.Background()); got {
		t.Fatalf("expected second toggle to return light")
	}
	if kv.values[PreferenceKey] != "light" {
		t.Fatalf("expected light persisted, got %q", kv.values[PreferenceKey])
	}
}

func TestToggleIgnoresWriteFailure(t *testing.T) {
	kv := &memKV{setErr: errors.New("disk full")}
	s := Load(context.Background(), kv, nil)
	if got := s.Toggle(context.Background()); !got {
		t.Fatalf("expected in-memory toggle despite write failure")
	}
	if !s.IsDark() {
		t.Fatalf("expected dark after toggle")
	}
}

func TestParseName(t *testing.T) {
	if dark, ok := ParseName("dark"); !ok || !dark {
		t.Fatalf("expected dark")
	}
	if dark, ok := ParseName("light"); !ok || dark {
		t.Fatalf("expected light")
	}
	if _, ok := ParseName("sepia"); ok {
		t.Fatalf("expected unknown theme to be rejected")
	}
}
