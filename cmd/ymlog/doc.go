// Package main hosts the ymlog CLI entrypoint and command graph.
//
// The Cobra-based command tree wraps the stream writer for everyday use:
// running a child process with its output captured as a nested log stream,
// verifying that an existing stream still parses, rendering a stream as a
// table, and configuration scaffolding. Keep this package lean: add new
// functionality to the internal packages first, then surface it through
// dedicated commands or flags here.
package main
