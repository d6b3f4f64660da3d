package version

import "fmt"

// overwritten at build time via -ldflags
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var FullVersion = fmt.Sprintf("%s (%s) %s", Version, Commit, Date)
