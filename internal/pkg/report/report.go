package report

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/buildtools/sccache-bootstrap/internal/pkg/cmdrun"
	"github.com/buildtools/sccache-bootstrap/internal/pkg/hostenv"
	"github.com/buildtools/sccache-bootstrap/internal/pkg/remotecache"
)

const unset = "(unset)"

// Report prints the resolved configuration for operator eyes: tool version
// and path, every remote cache variable (credentials as present/absent
// only), then sccache's own live statistics. Read-only; the environment is
// never mutated here.
func Report(w io.Writer, env *hostenv.Environment, binPath string) error {
	version, err := cmdrun.RunCmdCaptured(binPath, "--version")
	if err != nil {
		log.WithError(err).Warn("could not read sccache version")
		version = unset
	}
	fmt.Fprintf(w, "%s (%s)\n", version, binPath)

	for _, name := range remotecache.VarNames() {
		value, ok := env.Lookup(name)
		switch {
		case remotecache.IsCredentialVar(name):
			// Presence only. The value never reaches the report.
			if ok && value != "" {
				value = "set"
			} else {
				value = unset
			}
		case !ok || value == "":
			value = unset
		}
		fmt.Fprintf(w, "%s=%s\n", name, value)
	}

	// The stats output format belongs to sccache, not to us.
	return cmdrun.RunCmdSync(binPath, "--show-stats")
}
