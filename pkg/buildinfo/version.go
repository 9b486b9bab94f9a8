// Package buildinfo reports which margins build is running.
//
// Release builds stamp the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/margins/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/margins/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/margins/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/margins
//
// Unstamped builds fall back to what the Go toolchain embedded: the module
// version for "go install", and the VCS revision and time for checkouts.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"sync"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build identity served by the HTTP health endpoint.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

var embedded = sync.OnceValue(func() Info {
	var info Info
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		info.Version = v
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Commit = s.Value
		case "vcs.time":
			info.Date = s.Value
		}
	}
	return info
})

// Get returns the ldflags values, filling unstamped ones from the embedded
// build information when available.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	e := embedded()
	if info.Version == "dev" && e.Version != "" {
		info.Version = e.Version
	}
	if info.Commit == "none" && e.Commit != "" {
		info.Commit = e.Commit
	}
	if info.Date == "unknown" && e.Date != "" {
		info.Date = e.Date
	}
	return info
}

func (i Info) String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", i.Version, i.Commit, i.Date)
}

// Template is the cobra version template for [Get].
func Template() string {
	i := Get()
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", i.Version, i.Commit, i.Date)
}
