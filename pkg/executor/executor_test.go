package executor

import (
	"context"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	exec := New()

	out, err := exec.Execute(context.Background(), "echo", "hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Errorf("Execute() output = %q, want %q", out, "hello")
	}
}

func TestExecuteFailure(t *testing.T) {
	exec := New()

	_, err := exec.Execute(context.Background(), "false")
	if err == nil {
		t.Error("Execute() should return error for failing command")
	}
}

func TestExecuteInDir(t *testing.T) {
	exec := &implExecutor{}
	dir := t.TempDir()

	out, err := exec.ExecuteInDir(context.Background(), dir, "pwd")
	if err != nil {
		t.Fatalf("ExecuteInDir() error = %v", err)
	}
	if !strings.Contains(strings.TrimSpace(out), dir[strings.LastIndex(dir, "/")+1:]) {
		t.Errorf("ExecuteInDir() output = %q, want dir %q", out, dir)
	}
}
