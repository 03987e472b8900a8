// Package ctfherald is the domain package of the herald: the canonical event
// model, the run configuration and the application error type shared by all
// subpackages.
package ctfherald

// Build version & commit SHA, set by the release builder.
var (
	Version string
	Commit  string
)
