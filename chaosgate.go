package chaosgate

import (
	"context"
	"log/slog"

	"github.com/chaos-board/chaosgate/internal/platform"
	"github.com/chaos-board/chaosgate/pkg/core"
	"github.com/chaos-board/chaosgate/pkg/gate"
)

// Version exposes the version of the tool.
const Version = "0.1.0"

// --- Configuration ---

// Option defines a functional option for configuring chaosgate.
type Option = platform.Option

// WithLogger sets the logger for the validator and the git client.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithSource injects a custom change-set source (e.g. an in-memory fixture).
func WithSource(src core.Source) Option {
	return platform.WithSource(src)
}

// WithRemote names the git remote holding the base branch.
func WithRemote(name string) Option {
	return platform.WithRemote(name)
}

// --- Factory ---

// New wires a Validator for the repository at dir.
func New(dir string, opts ...Option) (*gate.Validator, error) {
	return platform.New(dir, opts...)
}

// --- Operations ---

// Check runs the full validation once against baseRef.
func Check(ctx context.Context, dir, baseRef string, opts ...Option) (core.Result, error) {
	v, err := New(dir, opts...)
	if err != nil {
		return core.Result{}, err
	}
	return v.Validate(ctx, baseRef)
}
