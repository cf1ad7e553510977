package shell

import (
	"os"
	"strings"
)

// builtinNames is the immutable set of command names the Builtin Engine
// handles in-process. A command name in this set always shadows a same-named
// executable found on PATH.
var builtinNames = map[string]bool{
	"exit": true,
	"echo": true,
	"type": true,
	"pwd":  true,
	"cd":   true,
}

// isBuiltin reports whether name is one of the shell's built-in commands.
func isBuiltin(name string) bool {
	return builtinNames[name]
}

// Session holds the process-wide configuration captured once at startup:
// the PATH search list and HOME directory. Both are read from the
// environment when the Shell is constructed and never change afterward —
// only the process's current working directory (mutated by cd) is live
// state, and that lives in the OS itself rather than in this struct.
type Session struct {
	pathDirs []string
	home     string
}

// newSession reads PATH and HOME from the environment, defaulting to an
// empty search list and "/" respectively when unset, per the data model's
// stated defaults.
func newSession() Session {
	s := Session{home: "/"}

	if p := os.Getenv("PATH"); p != "" {
		s.pathDirs = strings.Split(p, string(os.PathListSeparator))
	}

	if h := os.Getenv("HOME"); h != "" {
		s.home = h
	}

	return s
}
