package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/vosh/internal/pkg/logger"
)

func TestTokenizeSplitsOnWhitespace(t *testing.T) {
	cases := []struct {
		command string
		want    []string
	}{
		{"kcalc", []string{"kcalc"}},
		{"ls -la /tmp", []string{"ls", "-la", "/tmp"}},
		{"  echo   hello  world ", []string{"echo", "hello", "world"}},
		// No quoting support: quotes are ordinary characters.
		{`touch "my file"`, []string{"touch", `"my`, `file"`}},
		{"", nil},
		{"   ", nil},
	}

	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, Tokenize(tc.command)); diff != "" {
			t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tc.command, diff)
		}
	}
}

func TestExecuteEmptyCommand(t *testing.T) {
	local := NewLocal(logger.New(nil))

	result, err := local.Execute(context.Background(), "   ")
	if err == nil {
		t.Fatal("expected error for empty command")
	}
	if result.Ran {
		t.Fatal("empty command must not run")
	}
	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected *ExecError, got %T", err)
	}
}

func TestExecuteSpawnFailure(t *testing.T) {
	local := NewLocal(logger.New(nil))

	result, err := local.Execute(context.Background(), "definitely-not-a-real-binary-7f3a")
	if err == nil {
		t.Fatal("expected spawn failure")
	}
	if result.Ran {
		t.Fatal("spawn failure must not report Ran")
	}
	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected *ExecError, got %T", err)
	}
	if execErr.ExitCode != -1 {
		t.Fatalf("spawn failure exit code = %d, want -1", execErr.ExitCode)
	}
}
