package shell

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
)

// ErrCommandNotFound is returned by Resolve when name cannot be found on
// any directory in the search path.
var ErrCommandNotFound = errors.New("command not found")

// Resolve walks dirs in order looking for a regular, executable file named
// name. It returns the first match; directories that don't exist or can't
// be read are skipped silently, and an empty directory entry never matches
// (it is not treated as the current directory).
func Resolve(dirs []string, name string) (string, error) {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}

		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil {
			continue
		}
		if info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0 {
			return candidate, nil
		}
	}

	return "", ErrCommandNotFound
}

// Launcher spawns external executables and waits for them to finish.
type Launcher interface {
	Launch(ctx context.Context, path, argv0 string, args []string, streams StreamBindings) error
}

// processLauncher runs children with os/exec, matching the redirection
// contract every built-in also honors: the bound Out/Err writers become the
// child's stdout/stderr, and argv[0] is the name the user typed rather than
// the resolved absolute path.
type processLauncher struct{}

// NewLauncher returns the shell's default Launcher.
func NewLauncher() Launcher {
	return processLauncher{}
}

// Launch spawns the executable at path, waits for it to exit, and discards
// its exit status — the core's scope ends at "the child ran and finished".
// A failure to start the process (binary vanished between resolution and
// exec, permission revoked, etc.) is returned to the caller for reporting;
// a non-zero exit from a successfully started child is not an error.
func (processLauncher) Launch(ctx context.Context, path, argv0 string, args []string, streams StreamBindings) error {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Args = append([]string{argv0}, args...)
	cmd.Stdout = streams.Out
	cmd.Stderr = streams.Err
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil
		}
		return err
	}

	return nil
}
