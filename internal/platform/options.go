package platform

import (
	"log/slog"

	"github.com/chaos-board/chaosgate/pkg/core"
)

// options holds the internal configuration for wiring a validator.
type options struct {
	source core.Source
	logger *slog.Logger
	remote string
}

// Option defines a functional option for configuring chaosgate.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		source: nil,
		logger: nil,
		remote: "origin",
	}
}

// WithLogger sets the logger used by the validator and the git client.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSource injects a custom change-set source (e.g. an in-memory fixture).
// If provided, the default git-backed source is skipped.
func WithSource(src core.Source) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithRemote names the git remote holding the base branch. Defaults to
// "origin". Ignored when WithSource is used.
func WithRemote(name string) Option {
	return func(o *options) {
		if name != "" {
			o.remote = name
		}
	}
}
