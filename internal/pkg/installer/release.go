package installer

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"
)

// Version is the pinned sccache release this tool installs. Bumping it is a
// code change on purpose: every job run of a given revision installs the
// same build.
const Version = "v0.10.0"

const toolName = "sccache"

// Release identifies the pinned sccache build for one host platform, using
// the arch and vendor-os triple naming of the upstream release archives.
type Release struct {
	Version string
	Arch    string
	Triple  string
}

var archNames = map[string]string{
	"amd64": "x86_64",
	"386":   "i686",
	"arm64": "aarch64",
}

var osTriples = map[string]string{
	"linux":   "unknown-linux-musl",
	"darwin":  "apple-darwin",
	"windows": "pc-windows-msvc",
}

// HostRelease derives the Release for the machine we are running on.
func HostRelease() (Release, error) {
	arch, ok := archNames[runtime.GOARCH]
	if !ok {
		return Release{}, errors.Errorf("architecture not supported: %s", runtime.GOARCH)
	}
	triple, ok := osTriples[runtime.GOOS]
	if !ok {
		return Release{}, errors.Errorf("OS not supported: %s", runtime.GOOS)
	}
	return Release{Version: Version, Arch: arch, Triple: triple}, nil
}

func (r Release) stem() string {
	return fmt.Sprintf("%s-%s-%s-%s", toolName, r.Version, r.Arch, r.Triple)
}

// ArchiveName is the file name of the upstream release tarball.
func (r Release) ArchiveName() string {
	return r.stem() + ".tar.gz"
}

// ArchiveURL is the upstream download location for this release.
func (r Release) ArchiveURL() string {
	return fmt.Sprintf("https://github.com/mozilla/sccache/releases/download/%s/%s",
		r.Version, r.ArchiveName())
}

// BinaryName is the name of the tool binary on this platform.
func (r Release) BinaryName() string {
	if r.Triple == osTriples["windows"] {
		return toolName + ".exe"
	}
	return toolName
}
