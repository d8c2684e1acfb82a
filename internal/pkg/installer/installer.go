package installer

/*
	Installs the pinned sccache release into a project-relative cache
	directory. The install is idempotent by file existence: if the binary is
	already present (e.g. on a warm cache volume) no network work happens at
	all. There is no checksum manifest and no lock file; a partial binary
	left by an interrupted run, or two simultaneous cold installs on a
	shared volume, are accepted limitations of this scheme.
*/

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/coreos/go-semver/semver"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/buildtools/sccache-bootstrap/internal/pkg/cmdrun"
)

// EnsureInstalled makes sure the release binary exists under installDir and
// returns its path. The download and extraction happen in a private
// temporary directory which is removed on every exit path; only the final
// same-directory rename is visible in installDir.
func EnsureInstalled(rel Release, installDir string) (string, error) {
	binPath := filepath.Join(installDir, rel.BinaryName())
	if fi, err := os.Stat(binPath); err == nil && fi.Mode().IsRegular() {
		log.Infof("%s already installed at %s", toolName, binPath)
		return binPath, nil
	}

	if err := os.MkdirAll(installDir, 0755); err != nil {
		return "", errors.Wrapf(err, "creating %s", installDir)
	}

	// The temp dir lives inside installDir so the move below is a rename
	// on the same filesystem.
	tmpDir, err := os.MkdirTemp(installDir, ".download-")
	if err != nil {
		return "", errors.Wrap(err, "creating download dir")
	}
	defer os.RemoveAll(tmpDir)

	archive := filepath.Join(tmpDir, rel.ArchiveName())
	if err := downloadFile(archive, rel.ArchiveURL()); err != nil {
		return "", errors.Wrap(err, "downloading sccache release")
	}

	extracted, err := extractBinary(archive, rel.BinaryName(), tmpDir)
	if err != nil {
		return "", errors.Wrap(err, "extracting sccache release")
	}

	if err := os.Rename(extracted, binPath); err != nil {
		return "", errors.Wrap(err, "installing sccache binary")
	}

	log.Infof("Installed %s %s to %s", toolName, rel.Version, binPath)
	return binPath, nil
}

// ReportedVersion asks the installed binary for its version. Output is of
// the form "sccache 0.10.0".
func ReportedVersion(binPath string) (*semver.Version, error) {
	out, err := cmdrun.RunCmdCaptured(binPath, "--version")
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return nil, errors.Errorf("unexpected version output from %s: %q", binPath, out)
	}
	return semver.NewVersion(strings.TrimPrefix(fields[len(fields)-1], "v"))
}

// WarnIfStale logs when a warm-cache binary is older than the pin. The
// install criterion stays existence-only; an old binary is kept, not
// refetched.
func WarnIfStale(binPath string) {
	reported, err := ReportedVersion(binPath)
	if err != nil {
		log.WithError(err).Warn("could not determine installed sccache version")
		return
	}
	pinned := semver.New(strings.TrimPrefix(Version, "v"))
	if reported.LessThan(*pinned) {
		log.Warnf("installed sccache %s is older than pinned %s; remove the cache directory to upgrade",
			reported, pinned)
	}
}
