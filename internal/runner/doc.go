// Package runner executes the command lines that drive the Loom SDK tools.
//
// Command lines are parsed and interpreted in-process with mvdan.cc/sh, so
// a line built by the sdk package quotes and splits the same way on every
// host, including Windows where no POSIX shell is available. Each run is
// synchronous: the line is echoed, the combined stdout and stderr of the
// command is captured, and the captured text is echoed once the command
// finishes (nothing is echoed for empty output).
//
// [Runner.TryOrFail] is the only place in loomtasks that terminates the
// process; everything else reports failures as errors.
package runner
