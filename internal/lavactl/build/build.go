// Package build holds version information set at link time, e.g.
// -ldflags "-X github.com/openlava/openlava-go/internal/lavactl/build.ReleaseVersion=v1.2.3".
package build

import "runtime"

var (
	ReleaseVersion = "UNKNOWN_VERSION"
	GitCommit      = "UNKNOWN_GIT_COMMIT"
	BuildTime      = "UNKNOWN_BUILD_TIME"
	GoVersion      = runtime.Version()
)
