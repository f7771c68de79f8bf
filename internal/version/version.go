// Package version exposes build metadata stamped by the magefile.
package version

// Overridden via -ldflags at build time; the zero build is "dev".
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)
