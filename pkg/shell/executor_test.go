package shell

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	exePath := filepath.Join(dir, "greet")
	if err := os.WriteFile(exePath, []byte("#!/bin/sh\necho hi\n"), 0755); err != nil {
		t.Fatalf("seed executable: %v", err)
	}

	nonExePath := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(nonExePath, []byte("hello"), 0644); err != nil {
		t.Fatalf("seed non-executable: %v", err)
	}

	t.Run("finds executable on path", func(t *testing.T) {
		got, err := Resolve([]string{dir}, "greet")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != exePath {
			t.Errorf("got %q, want %q", got, exePath)
		}
	})

	t.Run("skips non-executable file", func(t *testing.T) {
		_, err := Resolve([]string{dir}, "notes.txt")
		if !errors.Is(err, ErrCommandNotFound) {
			t.Errorf("expected ErrCommandNotFound, got %v", err)
		}
	})

	t.Run("skips empty path entries", func(t *testing.T) {
		got, err := Resolve([]string{"", dir}, "greet")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != exePath {
			t.Errorf("got %q, want %q", got, exePath)
		}
	})

	t.Run("missing command", func(t *testing.T) {
		_, err := Resolve([]string{dir}, "nope")
		if !errors.Is(err, ErrCommandNotFound) {
			t.Errorf("expected ErrCommandNotFound, got %v", err)
		}
	})

	t.Run("first match on path wins", func(t *testing.T) {
		other := t.TempDir()
		otherExe := filepath.Join(other, "greet")
		if err := os.WriteFile(otherExe, []byte("#!/bin/sh\n"), 0755); err != nil {
			t.Fatalf("seed second executable: %v", err)
		}
		got, err := Resolve([]string{dir, other}, "greet")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != exePath {
			t.Errorf("got %q, want first match %q", got, exePath)
		}
	})
}
