// Package version exposes the build version stamped in via ldflags.
package version

// version is overridden at build time:
//
//	-ldflags "-X github.com/postreview/svndiff/internal/version.version=v1.2.3"
var version = "dev"

// Value returns the build version.
func Value() string {
	return version
}
