package layermode

import "log/slog"

// ResolverOption configures a Resolver during creation.
//
// Example:
//
//	r := layermode.NewResolver(layermode.WithLogger(logger))
type ResolverOption func(*resolverOptions)

// resolverOptions holds optional configuration for Resolver creation.
type resolverOptions struct {
	logger *slog.Logger
}

// WithLogger sets the logger that receives unknown-mode warnings.
// A nil logger makes the resolver silent. Without this option the
// resolver follows the package logger (see [SetLogger]).
func WithLogger(l *slog.Logger) ResolverOption {
	return func(o *resolverOptions) {
		if l == nil {
			l = newNopLogger()
		}
		o.logger = l
	}
}
