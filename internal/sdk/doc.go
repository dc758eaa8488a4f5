// Package sdk locates installed Loom SDKs and builds the command lines that
// drive their tools.
//
// Every SDK lives under <home>/.loom/sdks/<version>. Host binaries sit in
// bin/<os>-<arch>/{bin,tools} and the shared libraries in libs. A [Locator]
// derives all of these from explicit inputs on each call; nothing is cached,
// so a changed --sdk flag or project config takes effect immediately.
package sdk
