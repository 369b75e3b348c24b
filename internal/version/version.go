package version

import (
	"fmt"
	"runtime/debug"

	"github.com/samcharles93/dmmy/pkg/ntuple"
)

var (
	// Version is the release version (set via -ldflags).
	Version = ""
	// Commit is the git commit hash (set via -ldflags).
	Commit = ""
	// BuildTime is the build timestamp (set via -ldflags).
	BuildTime = ""
)

type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	// Format is the NTuple format version this build decodes.
	Format uint16 `json:"format"`
}

// Resolve fills unset ldflags values from the embedded build info.
func Resolve() Info {
	resolved := Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		Format:    ntuple.Version,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		if resolved.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			resolved.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if resolved.Commit == "" {
					resolved.Commit = s.Value
				}
			case "vcs.time":
				if resolved.BuildTime == "" {
					resolved.BuildTime = s.Value
				}
			}
		}
	}
	if resolved.Version == "" {
		resolved.Version = "dev"
	}

	return resolved
}

func String() string {
	info := Resolve()
	if info.Commit == "" {
		return fmt.Sprintf("%s (format %d)", info.Version, info.Format)
	}
	return fmt.Sprintf("%s (%s, format %d)", info.Version, shortCommit(info.Commit), info.Format)
}

func shortCommit(commit string) string {
	if len(commit) <= 12 {
		return commit
	}
	return commit[:12]
}
