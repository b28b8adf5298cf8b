package version

import "fmt"

// Build information, set with -ldflags "-X github.com/arthur-debert/rebatch/internal/version.Version=..."
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns "<version> (<commit>)", omitting an unknown commit
func Short() string {
	if Commit == "unknown" || Commit == "" {
		return Version
	}
	c := Commit
	if len(c) > 7 {
		c = c[:7]
	}
	return fmt.Sprintf("%s (%s)", Version, c)
}
