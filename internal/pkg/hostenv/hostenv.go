package hostenv

/*
	CI job steps communicate only through the process environment and the
	filesystem. GitHub-style runners additionally provide two append-only
	files for carrying mutations forward to later steps of the same job:
	$GITHUB_ENV for variables and $GITHUB_PATH for PATH entries. A step's
	own Setenv calls do not propagate to sibling steps; the files are the
	actual channel.

	The environment is modeled as an explicit value handed to each
	component, so every mutation shows up in a contract instead of hiding
	behind ambient global state. The job-wide files are separate, named
	side channels (Export, PublishPath) rather than an implicit part of Set.
*/

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Environment is the mutable process environment plus the job-wide
// propagation files, when the runner provides them.
type Environment struct {
	vars     map[string]string
	envFile  string
	pathFile string
}

// Capture snapshots the current process environment. Mutations made through
// the returned Environment are mirrored into the real process environment,
// so the remainder of this run observes them immediately.
func Capture() *Environment {
	e := &Environment{vars: make(map[string]string)}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		e.vars[k] = v
	}
	e.envFile = e.vars["GITHUB_ENV"]
	e.pathFile = e.vars["GITHUB_PATH"]
	return e
}

// Get returns the value of key, or "" when unset.
func (e *Environment) Get(key string) string {
	return e.vars[key]
}

// Lookup returns the value of key and whether it is set.
func (e *Environment) Lookup(key string) (string, bool) {
	v, ok := e.vars[key]
	return v, ok
}

// Set updates the variable for this process only.
func (e *Environment) Set(key, value string) error {
	if err := os.Setenv(key, value); err != nil {
		return errors.Wrapf(err, "setting %s", key)
	}
	e.vars[key] = value
	return nil
}

// Export sets the variable for this process and appends it to the job-wide
// environment file, so later steps of the same job inherit it. Without a
// job runner there is no file and the variable stays process-local.
func (e *Environment) Export(key, value string) error {
	if err := e.Set(key, value); err != nil {
		return err
	}
	if e.envFile == "" {
		log.Debugf("no job environment file; %s is process-local", key)
		return nil
	}
	return appendLine(e.envFile, fmt.Sprintf("%s=%s", key, value))
}

// PrependPath puts dir in front of the process PATH so lookups in this run
// prefer it over anything inherited.
func (e *Environment) PrependPath(dir string) error {
	return e.Set("PATH", dir+string(os.PathListSeparator)+e.Get("PATH"))
}

// PublishPath appends dir to the job-wide PATH file. Best effort: outside a
// job runner there is nothing to write to.
func (e *Environment) PublishPath(dir string) error {
	if e.pathFile == "" {
		log.Debug("no job path file; PATH update is process-local")
		return nil
	}
	return appendLine(e.pathFile, dir)
}

// LookPath resolves name through the current process PATH.
func (e *Environment) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// OnCI reports whether we are running under a CI annotation context.
func (e *Environment) OnCI() bool {
	return e.Get("GITHUB_ACTIONS") == "true"
}

func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	if _, err := fmt.Fprintln(f, line); err != nil {
		return errors.Wrapf(err, "appending to %s", path)
	}
	return nil
}
