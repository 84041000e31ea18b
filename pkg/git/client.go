package git

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/chaos-board/chaosgate/pkg/core"
)

// Client reads change sets and file contents out of a git working copy.
// It implements core.Source by shelling out to the git binary.
type Client struct {
	WorkDir string
	Remote  string
	Logger  *slog.Logger
}

// NewClient creates a git client for the given working directory.
func NewClient(workDir string, logger *slog.Logger) *Client {
	return &Client{
		WorkDir: workDir,
		Remote:  "origin",
		Logger:  logger,
	}
}

// Run executes a raw git command in the working directory and returns its
// trimmed output.
func (c *Client) Run(ctx context.Context, args ...string) (string, error) {
	out, err := c.output(ctx, args...)
	return strings.TrimSpace(out), err
}

// output is Run without trimming. FileContent needs the exact blob bytes;
// the byte-for-byte comparison outside the chaos region breaks if a
// trailing newline goes missing.
func (c *Client) output(ctx context.Context, args ...string) (string, error) {
	if c.Logger != nil {
		c.Logger.Debug("executing git", "args", args, "dir", c.WorkDir)
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.WorkDir

	out, err := cmd.CombinedOutput()
	output := string(out)

	if err != nil {
		return output, fmt.Errorf("git %s failed: %w\nOutput: %s", args[0], err, output)
	}

	return output, nil
}

// BaseRef resolves the base branch for a run. GitHub Actions exports
// GITHUB_BASE_REF on pull_request workflows; outside CI we fall back to the
// checked-out branch name, then to "main".
func (c *Client) BaseRef(ctx context.Context) string {
	if base := os.Getenv("GITHUB_BASE_REF"); base != "" {
		return base
	}
	if ref, err := c.Run(ctx, "rev-parse", "--abbrev-ref", "HEAD"); err == nil && ref != "" {
		return ref
	}
	return "main"
}

// ChangedFiles lists the paths differing between the merge-base with
// baseRef and HEAD. It fetches the base branch first so shallow CI
// checkouts can still reach the merge-base.
func (c *Client) ChangedFiles(ctx context.Context, baseRef string) ([]string, error) {
	if _, err := c.Run(ctx, "fetch", "--no-tags", "--prune", "--depth=200", c.Remote, baseRef); err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", core.ErrFetch, baseRef, err)
	}

	mergeBase, err := c.Run(ctx, "merge-base", "HEAD", c.Remote+"/"+baseRef)
	if err != nil {
		return nil, fmt.Errorf("%w: merge-base with %s: %v", core.ErrFetch, baseRef, err)
	}

	names, err := c.Run(ctx, "diff", "--name-only", mergeBase+"..HEAD")
	if err != nil {
		return nil, fmt.Errorf("%w: diff against %s: %v", core.ErrFetch, mergeBase, err)
	}

	var files []string
	for _, line := range strings.Split(names, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			files = append(files, name)
		}
	}
	return files, nil
}

// FileContent returns path at rev: `git show` for a base revision, a plain
// worktree read for the current one. Content is returned as-is.
func (c *Client) FileContent(ctx context.Context, rev core.Revision, path string) (string, error) {
	if ref, isBase := rev.Ref(); isBase {
		out, err := c.output(ctx, "show", c.Remote+"/"+ref+":"+path)
		if err != nil {
			return "", fmt.Errorf("%w: show %s at %s: %v", core.ErrFetch, path, ref, err)
		}
		return out, nil
	}

	data, err := os.ReadFile(filepath.Join(c.WorkDir, path))
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", core.ErrFetch, path, err)
	}
	return string(data), nil
}
