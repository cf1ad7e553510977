// Package shell implements an interactive POSIX-flavored command shell: a
// quote-aware tokenizer, a redirection planner, a small built-in command
// table, and a PATH-based launcher for external executables, all driven by
// a single-threaded read-eval-print loop.
//
// # I/O Redirection
//
//   - >   or 1>  : redirect stdout, truncating the target
//   - >>  or 1>> : redirect stdout, appending to the target
//   - 2>         : redirect stderr, truncating the target
//   - 2>>        : redirect stderr, appending to the target
//
// The same redirection plan governs both built-ins and external commands —
// that shared contract is what keeps the two execution paths consistent.
//
// # Usage
//
//	sh, err := shell.New(os.Stdin, os.Stdout, os.Stderr)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer sh.Close()
//	if err := sh.Run(); err != nil {
//		log.Fatal(err)
//	}
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Shell is one interactive session: a Line Editor, Tokenizer, Redirection
// Planner, Builtin Engine and Process Launcher wired together over a fixed
// Session configuration. Not safe for concurrent use — the core pipeline is
// strictly single-threaded and synchronous.
type Shell struct {
	editor   *LineEditor
	out, err io.Writer
	sess     Session

	tokenizer Tokenizer
	launcher  Launcher
}

// New constructs a Shell reading from in and writing to out/errw. PATH and
// HOME are captured from the environment at this point; later changes to
// either do not affect an already-constructed Shell.
func New(in io.Reader, out, errw io.Writer) (*Shell, error) {
	sess := newSession()

	editor, err := NewLineEditor(in, out, errw, sess)
	if err != nil {
		return nil, fmt.Errorf("initialize line editor: %w", err)
	}

	return &Shell{
		editor:    editor,
		out:       out,
		err:       errw,
		sess:      sess,
		tokenizer: NewTokenizer(),
		launcher:  NewLauncher(),
	}, nil
}

// Close releases the line editor's terminal handle.
func (sh *Shell) Close() error {
	return sh.editor.Close()
}

// Run executes the prompt-read-dispatch loop until exit 0 is run or the
// input stream hits EOF. It never returns a non-nil error for a parse
// failure, a missing executable, a failed redirection open, or a child's
// non-zero exit — those are reported on the error stream and the loop
// continues. A non-nil error here means the line editor itself failed.
func (sh *Shell) Run() error {
	for {
		line, eof, err := sh.editor.ReadLine()
		if err != nil {
			return err
		}
		if eof {
			fmt.Fprintln(sh.out)
			return nil
		}
		if line == "" {
			continue
		}

		words, err := sh.tokenizer.Tokenize(line)
		if err != nil {
			fmt.Fprintf(sh.err, "Error: %v\n", err)
			continue
		}
		if len(words) == 0 {
			continue
		}

		args, plan, err := PlanRedirections(words)
		if err != nil {
			fmt.Fprintf(sh.err, "Syntax error: %v\n", stripErrPrefix(err))
			continue
		}

		if len(args) == 0 {
			if plan.HasStdout() || plan.HasStderr() {
				if err := Touch(plan); err != nil {
					fmt.Fprintln(sh.err, "Error:", err)
				}
			}
			continue
		}

		if sh.dispatch(args, plan) {
			return nil
		}
	}
}

// dispatch opens the redirection plan's targets, then routes to the
// Builtin Engine or the Path Resolver/Process Launcher, closing any opened
// files before returning. It reports whether the command was exit 0 — the
// only built-in outcome that ends the Run loop.
func (sh *Shell) dispatch(args []string, plan RedirectionPlan) (exit bool) {
	streams, cleanup, err := Open(plan, StreamBindings{Out: sh.out, Err: sh.err})
	if err != nil {
		fmt.Fprintln(sh.err, "Error:", err)
		return false
	}
	defer cleanup()

	name, rest := args[0], args[1:]

	if fn, ok := builtins[name]; ok {
		if err := fn(rest, streams, sh.sess); err != nil {
			if errors.Is(err, ErrExit) {
				return true
			}
			fmt.Fprintln(streams.Err, "Error:", err)
		}
		return false
	}

	path, err := Resolve(sh.sess.pathDirs, name)
	if err != nil {
		fmt.Fprintf(streams.Err, "%s: command not found\n", name)
		return false
	}

	if err := sh.launcher.Launch(context.Background(), path, name, rest, streams); err != nil {
		fmt.Fprintf(streams.Err, "Error executing command: %v\n", err)
	}
	return false
}

// stripErrPrefix trims the "syntax error: " sentinel prefix errors.Is keys
// on, so the user-facing message reads exactly as spec'd.
func stripErrPrefix(err error) string {
	const prefix = "syntax error: "
	s := err.Error()
	if len(s) > len(prefix) && s[:len(prefix)] == prefix {
		return s[len(prefix):]
	}
	return s
}
