// Package poster defines the boundary to whatever publishes rewritten
// content back onto Threads. Publishing is driven by an external
// automation; only its success/failure signal matters here.
package poster

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/camreview/threads-affiliate/logger"
)

// Poster publishes one post. A nil return is a confirmed publish; the
// caller only marks a post published on that signal.
type Poster interface {
	CreatePost(ctx context.Context, content string, mediaPaths []string) error
}

// CommandPoster shells out to a user-supplied publish hook. The hook gets
// the rewritten content as its first argument followed by the local media
// paths, and signals a confirmed publish with exit status 0.
type CommandPoster struct {
	Command string
}

func (p *CommandPoster) CreatePost(ctx context.Context, content string, mediaPaths []string) error {
	if p.Command == "" {
		return fmt.Errorf("no publish command configured")
	}

	args := append([]string{content}, mediaPaths...)
	cmd := exec.CommandContext(ctx, p.Command, args...)

	out, err := cmd.CombinedOutput()
	if len(out) > 0 {
		logger.Logger.Printf("Publish hook output: %s", out)
	}
	if err != nil {
		return fmt.Errorf("publish hook failed: %w", err)
	}

	return nil
}
