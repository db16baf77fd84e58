package compose

import (
	"github.com/gogpu/layermode"
	"github.com/gogpu/layermode/internal/image"
)

// Option configures a Compositor or Stack during creation.
//
// Example:
//
//	stack := compose.NewStack(base, compose.WithWorkers(4))
type Option func(*options)

type options struct {
	pool     *image.Pool
	workers  int
	resolver *layermode.Resolver
}

func defaultOptions() options {
	return options{workers: 1}
}

// WithPool sets the buffer pool a Stack allocates layers from.
// Compositor ignores it.
func WithPool(p *image.Pool) Option {
	return func(o *options) {
		o.pool = p
	}
}

// WithWorkers sets how many goroutines composite row bands.
// 1 (the default) composites on the calling goroutine; 0 or negative uses
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithResolver sets the resolver layers are resolved with. Without it the
// package-level layermode.Resolve is used.
func WithResolver(r *layermode.Resolver) Option {
	return func(o *options) {
		o.resolver = r
	}
}
