package site

import (
	"context"
	"strings"
	"testing"
)

type call struct {
	name string
	args []string
}

func stubCommands(t *testing.T, results map[string]CommandResult) *[]call {
	t.Helper()
	var calls []call
	orig := runCommand
	runCommand = func(_ context.Context, _, name string, args ...string) CommandResult {
		calls = append(calls, call{name: name, args: args})
		key := name
		if len(args) > 0 {
			key = name + " " + args[0]
		}
		if res, ok := results[key]; ok {
			return res
		}
		return CommandResult{Success: true}
	}
	t.Cleanup(func() { runCommand = orig })
	return &calls
}

func TestBuildSuccess(t *testing.T) {
	calls := stubCommands(t, nil)
	res, err := Runner{Root: "/repo"}.Build(context.Background())
	if err != nil || !res.Success {
		t.Fatalf("Build: %v", err)
	}
	if len(*calls) != 1 || (*calls)[0].name != "zola" {
		t.Fatalf("unexpected calls: %+v", *calls)
	}
}

func TestBuildFailure(t *testing.T) {
	stubCommands(t, map[string]CommandResult{
		"zola build": {Success: false, Stderr: "Error: template not found\nmore detail", ExitCode: 1},
	})
	_, err := Runner{Root: "/repo"}.Build(context.Background())
	if err == nil || !strings.Contains(err.Error(), "template not found") {
		t.Fatalf("error should surface first stderr line: %v", err)
	}
}

func TestDeployRunsStepsInOrder(t *testing.T) {
	calls := stubCommands(t, nil)
	results, err := Runner{Root: "/repo"}.Deploy(context.Background(), "new post")
	if err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(results))
	}
	want := [][]string{{"git", "add"}, {"git", "commit"}, {"git", "push"}}
	for i, c := range *calls {
		if c.name != want[i][0] || c.args[0] != want[i][1] {
			t.Fatalf("step %d = %s %v", i, c.name, c.args)
		}
	}
	if (*calls)[1].args[2] != "new post" {
		t.Fatalf("commit message not forwarded: %v", (*calls)[1].args)
	}
}

func TestDeployStopsOnFailure(t *testing.T) {
	calls := stubCommands(t, map[string]CommandResult{
		"git commit": {Success: false, Stderr: "pre-commit hook failed", ExitCode: 1},
	})
	results, err := Runner{Root: "/repo"}.Deploy(context.Background(), "m")
	if err == nil {
		t.Fatalf("expected commit failure")
	}
	if len(results) != 2 || len(*calls) != 2 {
		t.Fatalf("push must not run after failed commit: %d results, %d calls", len(results), len(*calls))
	}
}

func TestDeployNothingToCommitIsClean(t *testing.T) {
	stubCommands(t, map[string]CommandResult{
		"git commit": {Success: false, Stdout: "nothing to commit, working tree clean", ExitCode: 1},
	})
	if _, err := (Runner{Root: "/repo"}).Deploy(context.Background(), "m"); err != nil {
		t.Fatalf("clean tree should not be an error: %v", err)
	}
}

func TestValidateContent(t *testing.T) {
	good := "+++\ntitle = \"T\"\ndate = \"2026-09-01\"\n+++\n\nbody\n"
	if problems := ValidateContent(good); len(problems) != 0 {
		t.Fatalf("valid doc flagged: %v", problems)
	}
	if problems := ValidateContent("no frontmatter"); len(problems) == 0 {
		t.Fatalf("missing frontmatter not flagged")
	}
	missing := "+++\ntitle = \"T\"\n+++\n\nbody\n"
	problems := ValidateContent(missing)
	if len(problems) != 1 || !strings.Contains(problems[0], "date") {
		t.Fatalf("missing date not flagged: %v", problems)
	}
	empty := "+++\ntitle = \"T\"\ndate = \"d\"\n+++\n"
	if problems := ValidateContent(empty); len(problems) != 1 {
		t.Fatalf("empty body not flagged: %v", problems)
	}
}
