package shell

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/chzyer/readline"
)

// prompt is the literal two characters written before every read.
const prompt = "$ "

// LineEditor acquires one logical input line at a time, offering raw-mode
// editing and tab completion over command names.
type LineEditor struct {
	inst      *readline.Instance
	completer *nameCompleter
}

// NewLineEditor wires up a readline.Instance against in/out/errw with a
// completer that draws its candidate set from sess and the built-in table.
// History is kept in memory for the lifetime of the session only — no
// HistoryFile is configured, so nothing is persisted to disk.
func NewLineEditor(in io.Reader, out, errw io.Writer, sess Session) (*LineEditor, error) {
	c := &nameCompleter{sess: sess}

	cfg := &readline.Config{
		Prompt:          prompt,
		Stdin:           io.NopCloser(in),
		Stdout:          out,
		Stderr:          errw,
		AutoComplete:    c,
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	}

	inst, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}
	c.rl = inst

	return &LineEditor{inst: inst, completer: c}, nil
}

// Close releases the underlying terminal handle.
func (le *LineEditor) Close() error {
	return le.inst.Close()
}

// ReadLine blocks for one line of input, trimmed of surrounding whitespace.
// eof reports whether the input stream has ended (Ctrl-D on an empty line),
// in which case the driver should terminate the session. A Ctrl-C at the
// prompt is swallowed here and reported as an empty, non-EOF line so the
// driver simply redraws the prompt.
func (le *LineEditor) ReadLine() (line string, eof bool, err error) {
	le.completer.reset()

	raw, rerr := le.inst.Readline()
	if rerr == io.EOF {
		return "", true, nil
	}
	if rerr == readline.ErrInterrupt {
		return "", false, nil
	}
	if rerr != nil {
		return "", false, rerr
	}

	return strings.TrimSpace(raw), false, nil
}

// nameCompleter implements readline.AutoCompleter for command-name
// completion only: it only offers candidates while the cursor sits in the
// first word of the line, matching the set of things PlanRedirections and
// the Builtin Engine would treat as a command name.
//
// It reproduces the two-stage protocol spec'd for tab completion: the first
// TAB against a given candidate set rings the terminal bell and inserts
// nothing; a second consecutive TAB against the same set prints every
// candidate on one new line, two spaces apart, and lets readline redraw the
// prompt and buffer beneath it. The candidate set resets at the start of
// every new command line.
type nameCompleter struct {
	sess Session
	rl   *readline.Instance

	lastKey   string
	tabStreak int
}

// reset clears completion state; called once per new command line.
func (c *nameCompleter) reset() {
	c.lastKey = ""
	c.tabStreak = 0
}

// Do implements readline.AutoCompleter.
func (c *nameCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	if strings.ContainsAny(strings.TrimLeft(text, " \t"), " \t") {
		// Cursor is past the first word; command-name completion doesn't apply.
		c.reset()
		return nil, 0
	}

	prefix := strings.TrimLeft(text, " \t")
	candidates := commandCandidates(c.sess, prefix)
	key := prefix + "\x00" + strings.Join(candidates, "\x00")

	if key != c.lastKey {
		c.lastKey = key
		c.tabStreak = 0
	}
	c.tabStreak++

	w := c.writer()

	if c.tabStreak == 1 {
		fmt.Fprint(w, "\a")
		return nil, 0
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Join(candidates, "  "))
	return nil, 0
}

// writer returns where completion side effects (bell, candidate listing)
// should be written. Writing through the readline instance's own Stdout
// lets the library redraw the prompt and buffer beneath our output, exactly
// as the protocol requires.
func (c *nameCompleter) writer() io.Writer {
	if c.rl != nil {
		return c.rl.Stdout()
	}
	return os.Stdout
}

// commandCandidates collects every built-in name plus every regular,
// executable file in any PATH directory, renders each as "name ", filters
// to those with prefix, deduplicates, and sorts lexicographically.
// Directories that don't exist or can't be listed are skipped silently.
func commandCandidates(sess Session, prefix string) []string {
	set := make(map[string]struct{})

	for name := range builtinNames {
		set[name+" "] = struct{}{}
	}

	for _, dir := range sess.pathDirs {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			info, err := e.Info()
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			if info.Mode().Perm()&0111 == 0 {
				continue
			}
			set[e.Name()+" "] = struct{}{}
		}
	}

	matches := make([]string, 0, len(set))
	for candidate := range set {
		if strings.HasPrefix(candidate, prefix) {
			matches = append(matches, candidate)
		}
	}
	sort.Strings(matches)
	return matches
}
