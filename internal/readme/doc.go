// Package readme keeps the version and SDK references in a library's
// README in step with the source.
//
// Two kinds of reference are recognized anywhere in the text:
//
//	https://github.com/<user>/<lib>/releases/download/v1.2.3/<lib>-sprint34.loomlib
//	~/.loom/sdks/sprint34/libs/<lib>.loomlib
//
// Every occurrence of each kind is rewritten.
package readme
