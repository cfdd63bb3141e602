// Package buildinfo contains build information.
//
// Build information should be set during compilation by passing
// -ldflags "-X github.com/Lantharos/flick/pkg/buildinfo.Var=value" to
// "go build".
package buildinfo

import (
	"encoding/json"
	"fmt"
	"runtime"
)

// Version identifies the version of Flick. On development commits, it
// identifies the next release.
const Version = "v0.1.0"

// VersionSuffix is appended to Version to build the full version string. It
// can be overridden when building Flick.
var VersionSuffix = "-dev.unknown"

// Reproducible identifies whether the build is reproducible. It can be
// overridden when building Flick.
var Reproducible = "false"

// Type contains all the build information fields.
type Type struct {
	Version      string `json:"version"`
	GoVersion    string `json:"goversion"`
	Reproducible bool   `json:"reproducible"`
}

// Value contains all the build information.
var Value = Type{
	Version:      Version + VersionSuffix,
	GoVersion:    runtime.Version(),
	Reproducible: Reproducible == "true",
}

// Show returns the build information as human-readable text, or as JSON.
func (t Type) Show(asJSON bool) string {
	if asJSON {
		b, _ := json.Marshal(t)
		return string(b) + "\n"
	}
	return fmt.Sprintf("Version: %s\nGo version: %s\nReproducible build: %v\n",
		t.Version, t.GoVersion, t.Reproducible)
}
