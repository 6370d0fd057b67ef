// Package version provides information about the build version of the tool.
package version

// BuildInfo holds version information about the build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information. version, commit and date are set at
// build time:
//
//	-ldflags "-X 'laborreport/internal/core/version.version=v0.1.0'
//	          -X 'laborreport/internal/core/version.commit=abcd'
//	          -X 'laborreport/internal/core/version.date=2026-10-01'"
func Info() BuildInfo {
	return BuildInfo{
		Service: "laborreport",
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// String is the one-line form printed by the version command
func (b BuildInfo) String() string {
	return b.Service + " " + b.Version + " (" + b.Commit + ", " + b.Date + ")"
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
