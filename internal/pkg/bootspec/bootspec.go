package bootspec

/*
	Optional YAML spec for the bootstrap run. Everything here has a flag or
	environment equivalent; a spec file just lets a job keep its cache
	settings declarative and checked in next to the workflow definition.
*/

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// BootSpec is the root-level item of the spec file.
type BootSpec struct {
	// InstallDir overrides where the sccache binary is cached.
	InstallDir string `yaml:"install_dir,omitempty"`

	RemoteCache RemoteCache `yaml:"remote_cache,omitempty"`
}

// RemoteCache carries the non-secret remote cache knobs. Credentials never
// belong in a spec file; they stay in the environment.
type RemoteCache struct {
	Bucket    string `yaml:"bucket,omitempty"`
	KeyPrefix string `yaml:"key_prefix,omitempty"`
	Workspace string `yaml:"workspace,omitempty"`
	Preflight bool   `yaml:"preflight,omitempty"`
}

// Load reads a spec file. An empty path yields the zero spec.
func Load(path string) (*BootSpec, error) {
	s := &BootSpec{}
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading spec %s", path)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrapf(err, "parsing spec %s", path)
	}
	return s, nil
}
