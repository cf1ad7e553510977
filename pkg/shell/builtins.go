package shell

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrExit signals that the exit builtin requested a clean shutdown of the
// session. It is never printed; the Session Driver treats it as the one
// non-error reason a built-in call ends the Run loop.
var ErrExit = errors.New("exit")

// Builtin is the shape of an in-process command. args excludes the command
// name itself. streams carries the Out/Err writers the Redirection Planner
// has already rebound for this one invocation — a built-in must never reach
// past them to the shell's inherited terminal streams directly, so that
// redirection and restoration stay centralized in the engine that calls it.
type Builtin func(args []string, streams StreamBindings, sess Session) error

// builtins is the fixed built-in table the Builtin Engine dispatches
// through. Registered once; never mutated after construction.
var builtins = map[string]Builtin{
	"exit": runExit,
	"echo": runEcho,
	"pwd":  runPwd,
	"cd":   runCd,
	"type": runType,
}

// runExit terminates the session only for the exact argument list ["0"];
// any other invocation (including a bare "exit") is a no-op that returns to
// the prompt, per spec.
func runExit(args []string, _ StreamBindings, _ Session) error {
	if len(args) == 1 && args[0] == "0" {
		return ErrExit
	}
	return nil
}

// runEcho writes args joined by single spaces, followed by a newline unless
// the first argument is the -n flag, in which case the flag is dropped and
// the newline is omitted.
func runEcho(args []string, streams StreamBindings, _ Session) error {
	suppressNewline := false
	if len(args) > 0 && args[0] == "-n" {
		suppressNewline = true
		args = args[1:]
	}

	fmt.Fprint(streams.Out, strings.Join(args, " "))
	if !suppressNewline {
		fmt.Fprintln(streams.Out)
	}
	return nil
}

// runPwd writes the absolute current working directory.
func runPwd(args []string, streams StreamBindings, _ Session) error {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(streams.Err, "pwd:", err)
		return nil
	}
	fmt.Fprintln(streams.Out, dir)
	return nil
}

// runCd changes the process's current working directory. With no arguments
// or a bare "~" it navigates to HOME; a leading "~/" expands against HOME;
// anything else is resolved relative to the current directory before the
// existence check. Only the first argument is honored when more than one is
// given. Failure is reported on streams.Err, never treated as fatal.
func runCd(args []string, streams StreamBindings, sess Session) error {
	target := sess.home
	if len(args) > 0 {
		target = args[0]
	}

	reported := target

	switch {
	case target == "~":
		target = sess.home
	case strings.HasPrefix(target, "~/"):
		target = filepath.Join(sess.home, target[2:])
	case !filepath.IsAbs(target):
		if cwd, err := os.Getwd(); err == nil {
			target = filepath.Join(cwd, target)
		}
	}

	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(streams.Err, "cd: %s: No such file or directory\n", reported)
		return nil
	}

	if err := os.Chdir(target); err != nil {
		fmt.Fprintf(streams.Err, "cd: %s: No such file or directory\n", reported)
	}
	return nil
}

// runType reports, for each trailing argument, whether it names a built-in,
// an executable found on PATH, or neither.
func runType(args []string, streams StreamBindings, sess Session) error {
	for _, name := range args {
		if isBuiltin(name) {
			fmt.Fprintf(streams.Out, "%s is a shell builtin\n", name)
			continue
		}

		if path, err := Resolve(sess.pathDirs, name); err == nil {
			fmt.Fprintf(streams.Out, "%s is %s\n", name, path)
			continue
		}

		fmt.Fprintf(streams.Out, "%s: not found\n", name)
	}
	return nil
}
