package main

/*
	sccache-bootstrap prepares a CI job for shared compile caching. One
	top-to-bottom run, no subcommands:

	  install    fetch the pinned sccache release into a cache directory,
	             skipping the network entirely on a warm cache volume
	  publish    wire the binary onto PATH for this process and for later
	             steps of the same job
	  configure  point sccache at the shared R2 bucket, only when the
	             account id secret is present
	  report     print the resolved configuration and live cache stats

	Every failure up to the report is fatal: a half-configured build cache
	is worse than none.
*/

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/buildtools/sccache-bootstrap/internal/pkg/bootspec"
	"github.com/buildtools/sccache-bootstrap/internal/pkg/hostenv"
	"github.com/buildtools/sccache-bootstrap/internal/pkg/installer"
	"github.com/buildtools/sccache-bootstrap/internal/pkg/pathwire"
	"github.com/buildtools/sccache-bootstrap/internal/pkg/remotecache"
	"github.com/buildtools/sccache-bootstrap/internal/pkg/report"
)

var (
	version = "devel"

	installDir string
	specFile   string
	preflight  bool
	logLevel   string

	cmdRoot = &cobra.Command{
		Use:           "sccache-bootstrap",
		Short:         "Install and wire sccache for this CI job",
		Long:          fmt.Sprintf("Installs sccache %s, wires it onto PATH and configures the shared remote cache.", installer.Version),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runBootstrap,
	}
)

func init() {
	log.SetOutput(os.Stdout)

	cmdRoot.Flags().StringVar(&installDir, "install-dir", filepath.Join(".cache", "sccache"),
		"project-relative directory holding the sccache binary")
	cmdRoot.Flags().StringVarP(&specFile, "spec", "s", "", "location of an optional boot spec")
	cmdRoot.Flags().BoolVar(&preflight, "preflight", false, "probe the remote cache bucket before reporting")
	cmdRoot.Flags().StringVar(&logLevel, "log-level", "info", "log level")
}

func main() {
	if err := cmdRoot.Execute(); err != nil {
		// Inside a CI annotation context the error also becomes a job
		// annotation, so it surfaces without digging through the log.
		if os.Getenv("GITHUB_ACTIONS") == "true" {
			fmt.Printf("::error::%v\n", err)
		}
		log.Error(err)
		os.Exit(1)
	}
}

func runBootstrap(c *cobra.Command, args []string) error {
	lvl, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)

	spec, err := bootspec.Load(specFile)
	if err != nil {
		return err
	}
	if spec.InstallDir != "" && !c.Flags().Changed("install-dir") {
		installDir = spec.InstallDir
	}

	env := hostenv.Capture()

	rel, err := installer.HostRelease()
	if err != nil {
		return err
	}
	binPath, err := installer.EnsureInstalled(rel, installDir)
	if err != nil {
		return err
	}
	installer.WarnIfStale(binPath)

	wired, err := pathwire.Publish(env, binPath)
	if err != nil {
		return err
	}

	cfg, err := remotecache.Configure(env, remotecache.Options{
		Bucket:    spec.RemoteCache.Bucket,
		KeyPrefix: spec.RemoteCache.KeyPrefix,
		Workspace: spec.RemoteCache.Workspace,
	})
	if err != nil {
		return err
	}
	if cfg != nil && (preflight || spec.RemoteCache.Preflight) {
		if err := remotecache.Preflight(c.Context(), cfg); err != nil {
			return err
		}
	}

	return report.Report(os.Stdout, env, wired)
}
