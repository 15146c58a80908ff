// Package version carries the build version of the debugmenu demo binary.
package version

// Version is set at build time with -ldflags "-X .../version.Version=v1.2.3".
var Version = "development"

// Commit is the git commit hash, set at build time.
var Commit = "unknown"

// String returns Version, suffixed with +Commit when the commit is known.
func String() string {
	if Commit != "unknown" {
		return Version + "+" + Commit
	}
	return Version
}
