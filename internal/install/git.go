package install

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"openskills/internal/logger"
)

// gitCommandTimeout bounds a single clone.
const gitCommandTimeout = 180 * time.Second

// ProgressCallback receives git progress lines ("Receiving objects: 34%").
type ProgressCallback func(line string)

// lookGit is replaced in tests.
var lookGit = func() error {
	_, err := exec.LookPath("git")
	return err
}

// gitCommand builds a git invocation that never prompts for credentials.
func gitCommand(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Env = append(os.Environ(),
		"GIT_TERMINAL_PROMPT=0",
		"GIT_ASKPASS=",
		"SSH_ASKPASS=",
	)
	return cmd
}

// runGit runs git under the clone timeout. With a progress callback stderr
// is streamed line by line, otherwise it is kept for the error message.
func runGit(ctx context.Context, dir string, onProgress ProgressCallback, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, gitCommandTimeout)
	defer cancel()

	cmd := gitCommand(ctx, args...)
	cmd.Dir = dir
	logger.G(ctx).WithField("args", args).Debug("running git")

	if onProgress == nil {
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			return wrapGitError(ctx, stderr.String(), err)
		}
		return nil
	}

	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	stderrText, scanErr := streamGitProgress(stderrPipe, onProgress)
	if err := cmd.Wait(); err != nil {
		return wrapGitError(ctx, stderrText, err)
	}
	return scanErr
}

// wrapGitError turns git's stderr into an actionable error.
func wrapGitError(ctx context.Context, stderr string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: timed out after %s", ErrGit, gitCommandTimeout)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	s := strings.TrimSpace(stderr)
	if strings.Contains(s, "Authentication failed") ||
		strings.Contains(s, "could not read Username") ||
		strings.Contains(s, "terminal prompts disabled") {
		return fmt.Errorf("%w: authentication required; use an SSH URL (git@host:owner/repo.git) or a git credential helper\n       %s", ErrGit, s)
	}
	if s != "" {
		return fmt.Errorf("%w: %s", ErrGit, s)
	}
	return fmt.Errorf("%w: %v", ErrGit, err)
}

// cloneRepo makes a shallow clone of url into dest.
func cloneRepo(ctx context.Context, url, dest string, onProgress ProgressCallback) error {
	args := []string{"clone", "--depth", "1"}
	if onProgress != nil {
		args = append(args, "--progress")
	} else {
		args = append(args, "--quiet")
	}
	args = append(args, url, dest)
	return runGit(ctx, "", onProgress, args...)
}

// headCommit returns the short HEAD hash of the checkout at dir.
func headCommit(ctx context.Context, dir string) (string, error) {
	cmd := gitCommand(ctx, "rev-parse", "--short", "HEAD")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func streamGitProgress(stderr io.Reader, onProgress ProgressCallback) (string, error) {
	var all bytes.Buffer
	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(scanGitProgress)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		all.WriteString(line)
		all.WriteByte('\n')
		if msg := strings.TrimSpace(line); msg != "" {
			onProgress(msg)
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return all.String(), err
	}
	return all.String(), nil
}

// scanGitProgress splits on either \r or \n so in-place progress updates
// surface one at a time.
func scanGitProgress(data []byte, atEOF bool) (advance int, token []byte, err error) {
	for i, b := range data {
		if b == '\n' || b == '\r' {
			return i + 1, data[:i], nil
		}
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}
