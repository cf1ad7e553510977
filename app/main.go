// Command shell is an interactive command-line shell.
//
// It provides a read-eval-print loop over built-in commands (cd, pwd, echo,
// exit, type) and any executable found on PATH, with POSIX-flavored quoting,
// output/error redirection, line editing, history, and tab completion over
// command names.
//
// # Limitations
//
// The following are out of scope:
//   - Pipes (|) and background jobs (&)
//   - Command substitution and globbing
//   - Environment variable expansion (other than ~ in cd)
//   - Job control and signal handling beyond Ctrl-C at the prompt
package main

import (
	"log"
	"os"

	"github.com/arjuntiwari/goshell/pkg/shell"
)

func main() {
	sh, err := shell.New(os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	defer sh.Close()

	if err := sh.Run(); err != nil {
		log.Fatal(err)
	}
}
