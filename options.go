package shader

import "log/slog"

// Option configures a Program at construction.
type Option func(*options)

type options struct {
	logger         *slog.Logger
	missingUniform func(name string)
}

func defaultOptions() options {
	return options{logger: defaultLogger}
}

// WithLogger sets the logger used for debug records of the program.
// A nil logger restores the package default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = defaultLogger
		}
		o.logger = l
	}
}

// WithMissingUniform registers fn to be called when a uniform setter is
// given a name that does not resolve in the program. The upload is still a
// no-op; fn only observes it. fn is called once per name, since locations
// are cached after the first lookup.
//
// Example:
//
//	prog, err := shader.New(ctx, src, shader.WithMissingUniform(func(name string) {
//	    log.Printf("uniform %q not active", name)
//	}))
func WithMissingUniform(fn func(name string)) Option {
	return func(o *options) { o.missingUniform = fn }
}
