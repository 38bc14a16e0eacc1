// Package version reports the version of fibtime and of the wazero runtime it
// embeds.
package version

import (
	"runtime/debug"
	"strings"
)

// Default is the default version value used when none was found.
const Default = "dev"

// version holds the fibtime version when set by ldflag, ex.
// -ldflags "-X github.com/tetratelabs/fibtime/internal/version.version=v1.0.0"
var version string

const wazeroPath = "github.com/tetratelabs/wazero"

// GetFibtimeVersion returns the version set by ldflag, or the main module
// version from build info.
func GetFibtimeVersion() string {
	if len(version) != 0 {
		return version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Default
	}
	return orDefault(info.Main.Version)
}

// GetWazeroVersion returns the version of wazero in the require statement of
// go.mod, ex. "v1.8.0".
func GetWazeroVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Default
	}
	return wazeroVersion(info.Deps)
}

func wazeroVersion(deps []*debug.Module) (ret string) {
	for _, dep := range deps {
		if dep.Path != wazeroPath {
			continue
		}
		ret = dep.Version
		if dep.Replace != nil && !versionMissing(dep.Replace.Version) {
			ret = dep.Replace.Version
		}
	}
	return orDefault(ret)
}

func orDefault(ret string) string {
	if versionMissing(ret) {
		return Default // don't return parens
	}
	return strings.TrimSpace(ret)
}

func versionMissing(ret string) bool {
	return ret == "" || ret == "(devel)"
}
