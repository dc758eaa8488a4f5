// Package version reads and rewrites the library version declared in a
// Loom source file.
//
// The declaration is a single line of the form
//
//	public static const version:String = '1.2.3';
//
// optionally indented. Only the first declaration in a document is
// significant. Rewriting touches the quoted value and nothing else, so the
// file's indentation, quoting and line endings survive byte for byte.
package version
