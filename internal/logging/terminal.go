package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

type fder interface{ Fd() uintptr }

// IsTTY returns true if the given reader or writer is a terminal.
// It supports os.File and any wrapper that provides an Fd() method.
func IsTTY(f any) bool {
	if fd, ok := f.(fder); ok {
		return term.IsTerminal(int(fd.Fd()))
	}
	return false
}

// SupportsColor returns true if w is a terminal and color has not been
// disabled through NO_COLOR or TERM=dumb.
func SupportsColor(w io.Writer) bool {
	return supportsColor(IsTTY(w))
}

func supportsColor(isTTY bool) bool {
	// https://no-color.org
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY
}

// Interactive reports whether both in and out are terminals, which is
// required before showing a full-screen picker.
func Interactive(in io.Reader, out io.Writer) bool {
	return IsTTY(in) && IsTTY(out)
}
