// Package capexdb holds build information for the capexdb tool.
package capexdb

var (
	// Version of capexdb, set by build flags.
	Version = "v0.1.0"

	// Build timestamp, set by build flags.
	Build = "n/a"
)
