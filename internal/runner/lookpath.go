package runner

import (
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/ellemenno/loomtasks/internal/errors"
)

// ErrExecutableNotFound indicates a command is not on the search path.
var ErrExecutableNotFound = errors.New("executable not found on PATH")

// LookPath resolves name against PATH, honoring PATHEXT on Windows.
func LookPath(name string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "resolving working directory")
	}
	path, err := interp.LookPathDir(cwd, expand.ListEnviron(os.Environ()...), name)
	if err != nil {
		return "", errors.Wrapf(ErrExecutableNotFound, "%s", name)
	}
	return path, nil
}

// Quote returns s quoted for the runner's shell syntax, or s itself when it
// needs no quoting.
func Quote(s string) string {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return s
	}
	return q
}

// Join quotes each argument and joins them into a command line.
func Join(args ...string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = Quote(a)
	}
	return strings.Join(quoted, " ")
}
