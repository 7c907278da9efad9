package runctl

import (
	"fmt"

	"github.com/bft-labs/runctl/pkg/lifecycle"
	"github.com/bft-labs/runctl/pkg/log"
	"github.com/bft-labs/runctl/pkg/timer"
)

// validateModuleVersions checks that all module versions are compatible.
func validateModuleVersions() error {
	modules := []struct {
		name       string
		version    string
		minVersion string
	}{
		{"lifecycle", lifecycle.Version, lifecycle.MinCompatibleVersion},
		{"timer", timer.Version, timer.MinCompatibleVersion},
		{"log", log.Version, log.MinCompatibleVersion},
	}

	for _, m := range modules {
		if !isVersionCompatible(m.version, m.minVersion) {
			return fmt.Errorf("module %s version %s is below minimum compatible version %s",
				m.name, m.version, m.minVersion)
		}
	}
	return nil
}

// isVersionCompatible reports whether version >= minVersion, both in
// "major.minor.patch" form.
func isVersionCompatible(version, minVersion string) bool {
	var vMajor, vMinor, vPatch int
	var mMajor, mMinor, mPatch int

	_, _ = fmt.Sscanf(version, "%d.%d.%d", &vMajor, &vMinor, &vPatch)
	_, _ = fmt.Sscanf(minVersion, "%d.%d.%d", &mMajor, &mMinor, &mPatch)

	if vMajor != mMajor {
		return vMajor > mMajor
	}
	if vMinor != mMinor {
		return vMinor > mMinor
	}
	return vPatch >= mPatch
}
