// Package paths provides the fixed filesystem anchors of a Loom
// installation and of a Loom project.
//
// Everything Loom installs lives under a per-user ".loom" directory in the
// home directory:
//
//	| Path                      | Purpose                          |
//	|---------------------------|----------------------------------|
//	| ~/.loom/                  | Loom home                        |
//	| ~/.loom/loom.config       | global Loom config (JSON)        |
//	| ~/.loom/sdks/             | one directory per SDK version    |
//
// A Loom project keeps its own loom.config and the compiled bin/Main.loom
// in the project root.
//
// The loomtasks tool's own settings follow the XDG Base Directory
// Specification via github.com/adrg/xdg (~/.config/loomtasks on Linux).
//
// # Error Handling
//
// [ResolveHome] reports [ErrHomeDirNotFound]; the convenience functions
// that take no home argument return an empty string instead.
package paths
