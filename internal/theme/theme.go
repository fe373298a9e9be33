// Package theme holds the persisted dark/light preference and the palette
// derived from it.
package theme

import (
	"context"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// PreferenceKey is the storage key of the theme preference.
const PreferenceKey = "theme"

const (
	valueDark  = "dark"
	valueLight = "light"
)

// KV is the durable key-value storage the preference lives in.
type KV interface {
	GetPreference(ctx context.Context, key string) (string, bool, error)
	SetPreference(ctx context.Context, key, value string) error
}

// Store is the process-wide theme cell. It is only mutated from the UI loop.
type Store struct {
	kv     KV
	logger *zap.Logger
	dark   bool
}

// Load reads the persisted preference once. A missing key or a read error
// falls back to light.
func Load(ctx context.Context, kv KV, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{kv: kv, logger: logger}
	if kv != nil {
		value, ok, err := kv.GetPreference(ctx, PreferenceKey)
		switch {
		case err != nil:
			logger.Warn("failed to read theme preference", zap.Error(err))
		case ok:
			s.dark = value == valueDark
		}
	}
	apply(s.dark)
	return s
}

// IsDark reports the current mode.
func (s *Store) IsDark() bool {
	return s.dark
}

// Name returns "dark" or "light".
func (s *Store) Name() string {
	if s.dark {
		return valueDark
	}
	return valueLight
}

// Toggle flips the mode, persists it and returns the new value.
func (s *Store) Toggle(ctx context.Context) bool {
	s.Set(ctx, !s.dark)
	return s.dark
}

// Set switches to the given mode and persists it. Storage failures only cost
// persistence and are logged.
func (s *Store) Set(ctx context.Context, dark bool) {
	s.dark = dark
	apply(dark)
	if s.kv == nil {
		return
	}
	if err := s.kv.SetPreference(ctx, PreferenceKey, s.Name()); err != nil {
		s.logger.Warn("failed to persist theme preference", zap.String("theme", s.Name()), zap.Error(err))
	}
}

// ParseName maps "dark"/"light" to the mode.
func ParseName(name string) (dark bool, ok bool) {
	switch name {
	case valueDark:
		return true, true
	case valueLight:
		return false, true
	default:
		return false, false
	}
}

// apply sets the global display marker every AdaptiveColor resolves against.
func apply(dark bool) {
	lipgloss.SetHasDarkBackground(dark)
}
