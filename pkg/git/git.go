// Package git wraps the handful of git plumbing commands ship needs.
package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shiptool/ship/pkg/runner"
)

// ErrNoBranch is returned when HEAD is detached or the repository has no
// commits yet.
var ErrNoBranch = errors.New("no current branch")

// Client runs git against one working directory.
type Client struct {
	run *runner.Runner
}

// New creates a Client backed by the given runner.
func New(run *runner.Runner) *Client {
	return &Client{run: run}
}

// IsRepo reports whether dir is inside a git work tree.
func (c *Client) IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// Init initializes a repository in the runner's directory.
func (c *Client) Init() error {
	return c.run.Run("git", "init")
}

// CurrentBranch returns the checked-out branch name.
func (c *Client) CurrentBranch() (string, error) {
	out, err := c.run.Output("git", "symbolic-ref", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoBranch, err)
	}
	if out == "" {
		return "", ErrNoBranch
	}
	return out, nil
}

// AddAll stages every change in the work tree.
func (c *Client) AddAll() error {
	return c.run.Run("git", "add", "-A")
}

// Commit records a commit with the given message.
func (c *Client) Commit(message string) error {
	return c.run.Run("git", "commit", "-m", message)
}

// Tag creates a lightweight tag.
func (c *Client) Tag(name string) error {
	return c.run.Run("git", "tag", name)
}

// LatestTag returns the most recent reachable tag, or "" when the
// repository has none.
func (c *Client) LatestTag() string {
	out, err := c.run.Output("git", "describe", "--tags", "--abbrev=0")
	if err != nil {
		return ""
	}
	return out
}

// Push pushes the given branch to origin.
func (c *Client) Push(branch string) error {
	return c.run.Run("git", "push", "origin", branch)
}

// PushTags pushes all tags to origin.
func (c *Client) PushTags() error {
	return c.run.Run("git", "push", "--tags", "origin")
}
