// Package lexdb is the root of the lexdb module. It keeps build
// metadata shared by the command line interface.
package lexdb

var (
	// Version of lexdb, set at build time via ldflags.
	Version = "v0.1.0"

	// Build timestamp, set at build time via ldflags.
	Build = "n/a"
)
