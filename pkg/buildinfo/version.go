// Package buildinfo exposes the version stamped into the archdiagram binary.
//
// Values are injected with ldflags:
//
//	go build -ldflags "-X github.com/jbass698-121/aveva-diagram-style/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/jbass698-121/aveva-diagram-style/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the JSON form served by the health endpoint.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the stamped values.
func Get() Info { return Info{Version: Version, Commit: Commit, Date: Date} }

// String returns a multi-line summary.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template is the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (%s, %s)\n", Version, Commit, Date)
}
