// Package site drives the Zola static site build and git-based deploy
// for the blog repository.
package site

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// CommandResult captures one external command invocation.
type CommandResult struct {
	Success  bool   `json:"success"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exit_code"`
}

// runCommand executes an external tool in a working directory. Swappable
// in tests.
var runCommand = func(ctx context.Context, dir, name string, args ...string) CommandResult {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	res := CommandResult{
		Success: err == nil,
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		res.ExitCode = exitErr.ExitCode()
	} else if err != nil {
		res.ExitCode = -1
		if res.Stderr == "" {
			res.Stderr = err.Error()
		}
	}
	return res
}

// Runner operates on a checked-out blog repository.
type Runner struct {
	Root string
}

// Build runs the Zola build in the repository root.
func (r Runner) Build(ctx context.Context) (CommandResult, error) {
	res := runCommand(ctx, r.Root, "zola", "build")
	if !res.Success {
		return res, fmt.Errorf("zola build failed: %s", firstLine(res.Stderr))
	}
	slog.Info("site built", "root", r.Root)
	return res, nil
}

// Deploy stages all changes, commits with the given message, and pushes.
// Each step must succeed before the next runs. A commit with nothing to
// commit is not an error.
func (r Runner) Deploy(ctx context.Context, message string) ([]CommandResult, error) {
	if message == "" {
		message = "Publish new content"
	}
	var results []CommandResult

	add := runCommand(ctx, r.Root, "git", "add", "-A")
	results = append(results, add)
	if !add.Success {
		return results, fmt.Errorf("git add failed: %s", firstLine(add.Stderr))
	}

	commit := runCommand(ctx, r.Root, "git", "commit", "-m", message)
	results = append(results, commit)
	if !commit.Success {
		if strings.Contains(commit.Stdout, "nothing to commit") || strings.Contains(commit.Stderr, "nothing to commit") {
			slog.Info("deploy skipped, nothing to commit", "root", r.Root)
			return results, nil
		}
		return results, fmt.Errorf("git commit failed: %s", firstLine(commit.Stderr))
	}

	push := runCommand(ctx, r.Root, "git", "push")
	results = append(results, push)
	if !push.Success {
		return results, fmt.Errorf("git push failed: %s", firstLine(push.Stderr))
	}
	slog.Info("site deployed", "root", r.Root, "message", message)
	return results, nil
}

// ValidateContent checks a post document for the structural problems that
// break a Zola build, returning one message per problem found.
func ValidateContent(doc string) []string {
	var problems []string
	trimmed := strings.TrimSpace(doc)
	if !strings.HasPrefix(trimmed, "+++") {
		problems = append(problems, "missing opening +++ frontmatter delimiter")
		return problems
	}
	rest := trimmed[3:]
	end := strings.Index(rest, "+++")
	if end < 0 {
		problems = append(problems, "missing closing +++ frontmatter delimiter")
		return problems
	}
	front := rest[:end]
	for _, required := range []string{"title", "date"} {
		if !strings.Contains(front, required+" =") {
			problems = append(problems, fmt.Sprintf("frontmatter missing %s field", required))
		}
	}
	body := strings.TrimSpace(rest[end+3:])
	if body == "" {
		problems = append(problems, "post body is empty")
	}
	return problems
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
