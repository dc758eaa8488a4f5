package runner

import (
	"context"
	"strings"

	"mvdan.cc/sh/v3/interp"

	"github.com/ellemenno/loomtasks/internal/errors"
)

// startHandler implements the cmd.exe `start "<title>" <program> [args...]`
// form used by the Windows player launcher: the program is started detached
// in a new console named title and the handler returns without waiting.
// On any other goos the command passes through untouched.
func startHandler(goos string) func(interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
		return func(ctx context.Context, args []string) error {
			if goos != "windows" || len(args) < 3 || !strings.EqualFold(args[0], "start") {
				return next(ctx, args)
			}
			hc := interp.HandlerCtx(ctx)
			title, prog := args[1], args[2]

			path, err := interp.LookPathDir(hc.Dir, hc.Env, prog)
			if err != nil {
				return next(ctx, args)
			}

			cmd := startCommand(title, path, args[3:])
			cmd.Dir = hc.Dir
			if err := cmd.Start(); err != nil {
				return errors.Wrapf(err, "starting %s", prog)
			}
			return cmd.Process.Release()
		}
	}
}

// startLine renders the cmd.exe line that opens path in a new console
// named title. The title is always quoted so start never mistakes it for
// the program.
func startLine(title, path string, args []string) string {
	var b strings.Builder
	b.WriteString(`cmd.exe /c start "`)
	b.WriteString(strings.ReplaceAll(title, `"`, ""))
	b.WriteString(`" `)
	b.WriteString(windowsQuote(path))
	for _, a := range args {
		b.WriteByte(' ')
		b.WriteString(windowsQuote(a))
	}
	return b.String()
}

func windowsQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\"") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
