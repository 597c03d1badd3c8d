package bumpgo

import "go.uber.org/zap"

// Option configures a World at construction time.
type Option[Item comparable] func(*World[Item])

// WithLogger attaches a zap logger the world will use for Debug-level
// tracing of item mutation and collision resolution; the world logs at no
// other level. The default is a no-op logger, so the engine stays silent
// on the hot path unless asked.
func WithLogger[Item comparable](log *zap.Logger) Option[Item] {
	return func(w *World[Item]) {
		if log != nil {
			w.log = log
		}
	}
}

// WithDefaultFilter overrides the world's default filter. Absent an
// override, every collision resolves via "slide".
func WithDefaultFilter[Item comparable](f FilterFunc[Item]) Option[Item] {
	return func(w *World[Item]) {
		if f != nil {
			w.filter = f
		}
	}
}
