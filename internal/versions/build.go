package versions

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const unknown = "unknown"

// Set at build time with -ldflags "-X".
var (
	Version   = "dev"
	Commit    = unknown
	BuildDate = unknown
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetBuildInfo returns the build information of the running binary. Development
// builds fill in the commit and date from the embedded VCS settings.
func GetBuildInfo() BuildInfo {
	var settings []debug.BuildSetting
	if info, ok := debug.ReadBuildInfo(); ok {
		settings = info.Settings
	}
	return buildInfo(Version, Commit, BuildDate, settings)
}

func buildInfo(version, commit, date string, settings []debug.BuildSetting) BuildInfo {
	if version == "dev" {
		for _, s := range settings {
			switch {
			case s.Key == "vcs.revision" && commit == unknown:
				commit = s.Value
			case s.Key == "vcs.time" && date == unknown:
				date = s.Value
			}
		}
		if commit != unknown {
			version = fmt.Sprintf("dev-%.8s", commit)
		}
	}

	return BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildDate: date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}
