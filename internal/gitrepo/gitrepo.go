// Package gitrepo drives the git working copy the report branches are
// read from.
//
// The pipeline only ever talks to the Accessor interface, so tests
// substitute an in-memory fake and never touch git or the network.
package gitrepo

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Accessor is the version-control boundary of the pipeline.
type Accessor interface {
	// EnsureWorkingCopy clones the repository if the working copy is
	// absent, or fetches all refs if it exists.
	EnsureWorkingCopy(ctx context.Context) error
	// ListRemoteBranches returns remote branch names with the remote
	// prefix stripped, in the order git lists them.
	ListRemoteBranches(ctx context.Context) ([]string, error)
	// Checkout force-checks-out branch, discarding local changes.
	Checkout(ctx context.Context, branch string) error
	// Dir returns the working copy path.
	Dir() string
}

// CLI is the git command-line implementation of Accessor.
type CLI struct {
	RepoURL string
	Remote  string
	Workdir string
}

// NewCLI returns a git CLI accessor for url at dir. remote defaults
// to origin.
func NewCLI(url, remote, dir string) *CLI {
	if remote == "" {
		remote = "origin"
	}
	return &CLI{RepoURL: url, Remote: remote, Workdir: dir}
}

// Dir returns the working copy path.
func (c *CLI) Dir() string { return c.Workdir }

// EnsureWorkingCopy clones into Workdir, or fetches when a checkout
// already exists there.
func (c *CLI) EnsureWorkingCopy(ctx context.Context) error {
	if _, err := os.Stat(filepath.Join(c.Workdir, ".git")); err == nil {
		if _, err := c.git(ctx, "fetch", "--all", "--prune"); err != nil {
			return fmt.Errorf("fetching %s: %w", c.RepoURL, err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.Workdir), 0o755); err != nil {
		return fmt.Errorf("creating workdir parent: %w", err)
	}
	cmd := exec.CommandContext(ctx, "git", "clone", c.RepoURL, c.Workdir)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("cloning %s: %w: %s", c.RepoURL, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// ListRemoteBranches runs `git branch -r` and parses the listing.
func (c *CLI) ListRemoteBranches(ctx context.Context) ([]string, error) {
	out, err := c.git(ctx, "branch", "-r")
	if err != nil {
		return nil, fmt.Errorf("listing remote branches: %w", err)
	}
	return ParseBranchList(out, c.Remote), nil
}

// Checkout force-checks-out branch, overwriting local modifications.
func (c *CLI) Checkout(ctx context.Context, branch string) error {
	if _, err := c.git(ctx, "checkout", "-f", branch); err != nil {
		return fmt.Errorf("checking out %s: %w", branch, err)
	}
	return nil
}

// git runs a git subcommand inside the working copy.
func (c *CLI) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.Workdir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

// ParseBranchList extracts branch names from `git branch -r` output.
// Lines for other remotes and the symbolic "HEAD ->" entry are
// dropped, and the "<remote>/" prefix is stripped.
func ParseBranchList(out, remote string) []string {
	prefix := remote + "/"
	var branches []string
	for _, line := range strings.Split(out, "\n") {
		name := strings.TrimSpace(line)
		if name == "" || strings.Contains(name, "HEAD ->") {
			continue
		}
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		branches = append(branches, strings.TrimPrefix(name, prefix))
	}
	return branches
}
