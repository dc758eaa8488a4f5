// Package editor launches the user's preferred text editor on a config file.
package editor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"mvdan.cc/sh/v3/shell"

	"github.com/ellemenno/loomtasks/internal/errors"
	"github.com/ellemenno/loomtasks/internal/logging"
)

// Open launches the editor on path and waits for it to exit.
// Uses $EDITOR, then $VISUAL, then nano, then vi (notepad on Windows).
func Open(ctx context.Context, path string, out io.Writer) error {
	argv, err := Command(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Location: %s\n", path)
	logging.FromContext(ctx).Debug("opening editor", "argv", argv)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "running editor")
	}
	return nil
}

// Command returns the argv that edits path. Editor settings may carry
// arguments, e.g. EDITOR="code --wait".
func Command(path string) ([]string, error) {
	line := detectEditor()
	fields, err := shell.Fields(line, func(string) string { return "" })
	if err != nil {
		return nil, errors.Wrapf(err, "parsing editor command %q", line)
	}
	if len(fields) == 0 {
		return nil, errors.Newf("empty editor command %q", line)
	}
	return append(fields, path), nil
}

// detectEditor returns the editor command to use based on environment variables
// and available binaries. Fallback chain: $EDITOR → $VISUAL → nano → vi
func detectEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	if runtime.GOOS == "windows" {
		return "notepad"
	}

	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}

	return "vi"
}
