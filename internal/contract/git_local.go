package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(_ context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.Command("git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s. If this is not a Git repository, verify the path or run 'git init'", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// GetRepoRoot implements the GitClient interface.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GetFirstCommitTime implements the GitClient interface.
func (c *LocalGitClient) GetFirstCommitTime(ctx context.Context, repoPath string) (time.Time, error) {
	out, err := c.Run(ctx, repoPath, "log", "--reverse", "--pretty=format:%ad", "--date=iso-strict")
	if err != nil {
		return time.Time{}, err
	}
	lines := strings.SplitN(strings.TrimSpace(string(out)), "\n", 2)
	if len(lines) == 0 || lines[0] == "" {
		return time.Time{}, errors.New("repository has no commits")
	}
	return time.Parse(time.RFC3339, strings.TrimSpace(lines[0]))
}

// GetCommitLog implements the GitClient interface.
func (c *LocalGitClient) GetCommitLog(ctx context.Context, repoPath string, startTime, endTime time.Time) ([]byte, error) {
	args := []string{
		"log",
		"--pretty=format:%an|%ad",
		"--date=iso-strict",
	}
	if !startTime.IsZero() {
		args = append(args, fmt.Sprintf("--since=%s", startTime.Format(DateTimeFormat)))
	}
	if !endTime.IsZero() {
		args = append(args, fmt.Sprintf("--until=%s", endTime.Format(DateTimeFormat)))
	}
	return c.Run(ctx, repoPath, args...)
}
