package digo

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Option configures a container.
type Option func(*options)

type options struct {
	id      string
	logger  *zap.Logger
	casters *CasterRegistry
}

// applyDefaults fills zero-valued fields.
func (o *options) applyDefaults() {
	if o.id == "" {
		o.id = uuid.NewString()
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.casters == nil {
		o.casters = defaultCasters
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	o.applyDefaults()
	return o
}

// WithLogger sets the logger used for binding and resolution events.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCasterRegistry makes the container cast through r instead of the
// process-wide registry.
func WithCasterRegistry(r *CasterRegistry) Option {
	return func(o *options) {
		o.casters = r
	}
}

// WithID overrides the generated container id reported in logs.
func WithID(id string) Option {
	return func(o *options) {
		o.id = id
	}
}
