package repository

import "time"

// Option applies a configuration option to the JSONStore.
type Option func(*JSONStore)

// WithClock replaces the wall clock used for click timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *JSONStore) {
		if now != nil {
			s.now = now
		}
	}
}
