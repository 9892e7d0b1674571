package ivfgo

import (
	"log/slog"

	"github.com/hupe1980/ivfgo/planner"
)

type options struct {
	generic  planner.GenericCostEstimator
	settings *SettingsVar
	logger   *Logger
}

// Option configures AccessMethod construction.
type Option func(*options)

// WithGenericEstimator configures the host planner's generic index cost
// estimator. If nil is passed, planner.LinearEstimator is used.
func WithGenericEstimator(g planner.GenericCostEstimator) Option {
	return func(o *options) {
		if g == nil {
			g = planner.LinearEstimator{}
		}
		o.generic = g
	}
}

// WithSettings configures a shared settings holder. Useful when several
// access-method instances must observe one session's tunables.
func WithSettings(v *SettingsVar) Option {
	return func(o *options) {
		if v != nil {
			o.settings = v
		}
	}
}

// WithLogger configures structured logging. Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		generic:  planner.LinearEstimator{},
		settings: NewSettingsVar(),
		logger:   NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
