package pathwire

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/buildtools/sccache-bootstrap/internal/pkg/hostenv"
)

// WiringError means the tool did not resolve to the managed install after
// the PATH update. The message deliberately separates "installed but not
// wired" from "not installed": the two are different bugs and the operator
// should not have to re-run with extra verbosity to tell them apart.
type WiringError struct {
	LookupErr    error  // nil when lookup succeeded but hit the wrong binary
	Resolved     string // what lookup returned, when it returned anything
	ExpectedPath string
	BinaryExists bool
	Path         string // full PATH at failure time
}

func (e *WiringError) Error() string {
	var what string
	switch {
	case e.LookupErr != nil && e.BinaryExists:
		what = fmt.Sprintf("lookup failed (%v) although the binary exists at %s; PATH wiring is broken",
			e.LookupErr, e.ExpectedPath)
	case e.LookupErr != nil:
		what = fmt.Sprintf("lookup failed (%v) and the binary does not exist at %s; it was never installed",
			e.LookupErr, e.ExpectedPath)
	default:
		what = fmt.Sprintf("lookup resolved %s instead of the managed install at %s",
			e.Resolved, e.ExpectedPath)
	}
	return fmt.Sprintf("sccache not wired onto PATH: %s\nPATH=%s", what, e.Path)
}

// Publish makes the directory holding binPath visible to this process
// immediately and, best effort, to later steps of the same job. It returns
// the absolute path of the binary as re-resolved through the updated PATH.
//
// The verification at the end is not optional politeness: if the name does
// not resolve to the binary this run installed, every later compiler
// invocation would silently use a stale or missing wrapper.
func Publish(env *hostenv.Environment, binPath string) (string, error) {
	expected, err := filepath.Abs(binPath)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", binPath)
	}
	absDir := filepath.Dir(expected)

	if err := env.PublishPath(absDir); err != nil {
		log.WithError(err).Warn("could not append to the job path file")
	}
	if err := env.PrependPath(absDir); err != nil {
		return "", err
	}

	name := strings.TrimSuffix(filepath.Base(expected), ".exe")
	resolved, err := env.LookPath(name)
	if err != nil {
		return "", &WiringError{
			LookupErr:    err,
			ExpectedPath: expected,
			BinaryExists: fileExists(expected),
			Path:         env.Get("PATH"),
		}
	}
	if resolved, err = filepath.Abs(resolved); err != nil {
		return "", errors.Wrapf(err, "resolving %s", resolved)
	}
	if resolved != expected {
		return "", &WiringError{
			Resolved:     resolved,
			ExpectedPath: expected,
			BinaryExists: fileExists(expected),
			Path:         env.Get("PATH"),
		}
	}

	log.Infof("sccache wired onto PATH at %s", resolved)
	return resolved, nil
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
