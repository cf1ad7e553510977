package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// OpenMode selects whether a redirection target is truncated or appended to.
type OpenMode int

const (
	// Truncate overwrites the target file's existing contents.
	Truncate OpenMode = iota
	// Append adds to the end of the target file's existing contents.
	Append
)

// streamTarget names a file and the mode it should be opened in.
type streamTarget struct {
	path string
	mode OpenMode
}

// RedirectionPlan is the decoded stdout/stderr file-binding intent for one
// command line. Real shells open each redirection target as they parse it,
// so every directive for a stream — not just the last — actually touches
// its file; a zero-value Plan redirects nothing. The slices here are kept in
// parse order so Open and Touch can replay that side effect faithfully:
// only the final entry of each slice becomes the live stream binding, but
// every earlier entry still gets created/truncated/appended-to and then
// closed.
type RedirectionPlan struct {
	stdout []streamTarget
	stderr []streamTarget
}

// HasStdout reports whether the plan redirects standard output.
func (p RedirectionPlan) HasStdout() bool { return len(p.stdout) > 0 }

// HasStderr reports whether the plan redirects standard error.
func (p RedirectionPlan) HasStderr() bool { return len(p.stderr) > 0 }

// ErrSyntax is returned when a redirection operator is not followed by
// exactly one filename token.
var ErrSyntax = errors.New("syntax error")

// redirectOperators maps every recognized operator token to the stream it
// targets and the mode it opens that stream in. 1> is a synonym for >, as is
// 1>> for >>.
var redirectOperators = map[string]struct {
	stderr bool
	mode   OpenMode
}{
	">":   {stderr: false, mode: Truncate},
	"1>":  {stderr: false, mode: Truncate},
	">>":  {stderr: false, mode: Append},
	"1>>": {stderr: false, mode: Append},
	"2>":  {stderr: true, mode: Truncate},
	"2>>": {stderr: true, mode: Append},
}

// PlanRedirections scans words for redirection operators, returning the
// argument vector with operators and their targets stripped out, plus the
// resulting plan. Every directive targeting a stream is recorded in order,
// so "cmd > a > b" plans output to b while still leaving a created (empty,
// since > truncates); only the last directive per stream ends up as the
// live binding. An operator at the end of words with no following filename
// fails with ErrSyntax, wrapping a message naming the offending operator.
func PlanRedirections(words []string) ([]string, RedirectionPlan, error) {
	args := make([]string, 0, len(words))
	var plan RedirectionPlan

	for i := 0; i < len(words); i++ {
		op, recognized := redirectOperators[words[i]]
		if !recognized {
			args = append(args, words[i])
			continue
		}

		if i+1 >= len(words) {
			return nil, RedirectionPlan{}, fmt.Errorf("%w: no filename after '%s'", ErrSyntax, words[i])
		}

		target := streamTarget{path: words[i+1], mode: op.mode}
		if op.stderr {
			plan.stderr = append(plan.stderr, target)
		} else {
			plan.stdout = append(plan.stdout, target)
		}
		i++
	}

	return args, plan, nil
}

// StreamBindings are the concrete writers a command's output is bound to —
// either the shell's own terminal streams or files opened for redirection.
type StreamBindings struct {
	Out io.Writer
	Err io.Writer
}

// Open applies plan against base. Every target but the last in each
// stream's directive list is opened and immediately closed, in order,
// reproducing the side effect of bash actually opening each redirection as
// it parses the command line; only the last target per stream is left open
// and bound into the returned StreamBindings. The returned cleanup function
// closes whatever files are still open; it must be called (even on error
// paths that already produced partial bindings, where it is a no-op)
// before the next command line is processed, per the resource model's "no
// handle survives across commands" rule.
func Open(plan RedirectionPlan, base StreamBindings) (StreamBindings, func(), error) {
	bindings := base
	var opened []io.Closer

	cleanup := func() {
		for _, c := range opened {
			c.Close()
		}
	}

	if len(plan.stdout) > 0 {
		f, err := openLast(plan.stdout)
		if err != nil {
			cleanup()
			return base, func() {}, err
		}
		bindings.Out = f
		opened = append(opened, f)
	}

	if len(plan.stderr) > 0 {
		f, err := openLast(plan.stderr)
		if err != nil {
			cleanup()
			return base, func() {}, err
		}
		bindings.Err = f
		opened = append(opened, f)
	}

	return bindings, cleanup, nil
}

// openLast opens every target in targets in order, closing all but the
// final one immediately, and returns the final one still open. An error
// opening any target (including the last) closes whatever was left open so
// far before returning.
func openLast(targets []streamTarget) (*os.File, error) {
	var last *os.File

	for i, t := range targets {
		f, err := openTarget(t)
		if err != nil {
			if last != nil {
				last.Close()
			}
			return nil, err
		}
		if i == len(targets)-1 {
			last = f
		} else {
			f.Close()
		}
	}

	return last, nil
}

// Touch creates, truncates, or appends to every target named in plan —
// all stdout targets in parse order, then all stderr targets in parse
// order — without leaving anything open or
// producing any other output. It covers the edge case where a command line
// consists solely of redirection operators — every operator still performs
// its open, including ones that would otherwise have been superseded by a
// later directive on the same stream.
func Touch(plan RedirectionPlan) error {
	for _, targets := range [][]streamTarget{plan.stdout, plan.stderr} {
		for _, t := range targets {
			f, err := openTarget(t)
			if err != nil {
				return err
			}
			f.Close()
		}
	}
	return nil
}

func openTarget(t streamTarget) (*os.File, error) {
	flag := os.O_CREATE | os.O_WRONLY
	if t.mode == Truncate {
		flag |= os.O_TRUNC
	} else {
		flag |= os.O_APPEND
	}
	return os.OpenFile(t.path, flag, 0644)
}
