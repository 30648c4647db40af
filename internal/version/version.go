package version

import (
	"fmt"
	"runtime"
)

// Set via -ldflags at build time.
var (
	Name      = "rfw"
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

func String() string {
	return fmt.Sprintf("%s version %s (commit: %s, built: %s, go: %s)",
		Name, Version, Commit, BuildTime, runtime.Version())
}

func Short() string {
	return fmt.Sprintf("%s %s", Name, Version)
}
