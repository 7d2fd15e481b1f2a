// Package buildconfig exposes metadata injected at link time:
//
//	go build -ldflags "-X github.com/Harshitk-cp/cloudtail/internal/buildconfig.version=v1.2.0"
package buildconfig

import "runtime"

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = ""
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
}

func Version() string {
	return version
}

func Commit() string {
	return commit
}

// Get returns the build information of the running binary.
func Get() Info {
	return Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	}
}
