package platform

import (
	"fmt"
	"os"

	"github.com/chaos-board/chaosgate/pkg/gate"
	"github.com/chaos-board/chaosgate/pkg/git"
)

// New wires a Validator for the repository at dir.
// The default source shells out to git in dir; tests swap it via WithSource.
func New(dir string, opts ...Option) (*gate.Validator, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	src := o.source
	if src == nil {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("repository dir %s: %w", dir, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("repository dir %s: not a directory", dir)
		}

		client := git.NewClient(dir, o.logger)
		client.Remote = o.remote
		src = client
	}

	return gate.NewValidator(src, o.logger), nil
}
