// Package faunadb holds application-level metadata shared by the CLI
// and the library packages.
package faunadb

var (
	// Version is set by the build system via ldflags.
	Version = "v0.1.0"
	// Build is the build timestamp, set via ldflags.
	Build = "n/a"
)
