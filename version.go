package imagedeck

import (
	"fmt"
	"runtime/debug"
)

// Version information for imagedeck.
const (
	VersionMajor = 1
	VersionMinor = 0
	VersionPatch = 0
)

// Version is the full version string.
var Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)

// BuildInfo returns the version followed by the VCS revision when the binary
// was built from a checkout.
func BuildInfo() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Version
	}
	rev, dirty := "", false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if rev == "" {
		return Version
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	if dirty {
		rev += "-dirty"
	}
	return Version + " (" + rev + ")"
}

// appVersion is the AppVersion written to docProps/app.xml, which must
// look like "XX.YYYY".
func appVersion() string {
	return fmt.Sprintf("%02d.%04d", VersionMajor, VersionMinor)
}
