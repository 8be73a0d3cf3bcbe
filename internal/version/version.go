// Package version reports the build of Package Express and the shipping
// limits it was built with.
package version

import (
	"fmt"
	"runtime"

	"packagexpress/internal/models"
)

// Build information, set with -ldflags at build time
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
	BuiltBy = "unknown"
)

// Info describes a Package Express build
type Info struct {
	Version   string        `json:"version"`
	Commit    string        `json:"commit"`
	Date      string        `json:"date"`
	BuiltBy   string        `json:"builtBy"`
	GoVersion string        `json:"goVersion"`
	Platform  string        `json:"platform"`
	Limits    models.Limits `json:"limits"`
}

// GetInfo returns the current build information
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		BuiltBy:   BuiltBy,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Limits:    models.DefaultLimits(),
	}
}

// GetVersionString returns the one-line form printed by --version.
// Development builds include the commit and date.
func GetVersionString() string {
	if Version == "dev" {
		return fmt.Sprintf("packagexpress %s (commit: %s, built: %s)", Version, Commit, Date)
	}
	return fmt.Sprintf("packagexpress v%s", Version)
}

// GetFullVersionString returns the report printed by the version command
func GetFullVersionString() string {
	info := GetInfo()
	return fmt.Sprintf(`Package Express shipping quote tool
Version:    %s
Commit:     %s
Built:      %s
Built by:   %s
Go version: %s
Platform:   %s
Limits:     weight <= %g, width+height+length <= %g
`, info.Version, info.Commit, info.Date, info.BuiltBy, info.GoVersion, info.Platform,
		info.Limits.MaxWeight, info.Limits.MaxDimensions)
}
