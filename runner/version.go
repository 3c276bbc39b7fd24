package runner

import "fmt"

var (
	// Version is the current application version
	// It is injected at build time via -ldflags
	Version = "dev"

	// BuildDate is the timestamp of the build
	// It is injected at build time via -ldflags
	BuildDate = "unknown"

	// Commit is the git commit hash
	// It is injected at build time via -ldflags
	Commit = "none"
)

// VersionString is printed by -version
func VersionString() string {
	return fmt.Sprintf("vquest %s (commit %s, built %s)", Version, Commit, BuildDate)
}

// UserAgent identifies the client to the V-QUEST server
func UserAgent() string {
	return "vquest/" + Version
}
