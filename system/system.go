package system

import (
	"fmt"
	"runtime"
)

// Version is set at build time through ldflags.
var Version = "develop"

// Information describes this daemon instance.
type Information struct {
	Version      string `json:"version"`
	OS           string `json:"os"`
	Architecture string `json:"architecture"`
	GoVersion    string `json:"go_version"`
}

// GetSystemInformation collects the static facts about the running daemon.
func GetSystemInformation() Information {
	return Information{
		Version:      Version,
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		GoVersion:    runtime.Version(),
	}
}

// String returns a single line identification of this build, used in logs and
// diagnostics output.
func (i Information) String() string {
	return fmt.Sprintf("modctl %s (%s/%s, %s)", i.Version, i.OS, i.Architecture, i.GoVersion)
}
