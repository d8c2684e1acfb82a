package remotecache

/*
	Derives and publishes the environment that points sccache at a shared
	R2 bucket. Strictly opt-in: without the account id secret this whole
	component is a no-op, so forks and local runs build without remote
	caching instead of failing on missing credentials.

	Isolation between concurrent jobs sharing the bucket is sccache's
	problem (key prefixing and content addressing), not ours.
*/

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/buildtools/sccache-bootstrap/internal/pkg/hostenv"
)

const (
	defaultBucket    = "sccache-cache"
	defaultKeyPrefix = "sccache"

	// R2 exposes one S3-compatible endpoint per account; buckets are not
	// region-bound, so the region is the provider's "auto" sentinel.
	endpointTemplate = "https://%s.r2.cloudflarestorage.com"
	regionAuto       = "auto"
)

// Consumed environment.
const (
	EnvAccountID       = "SCCACHE_ACCOUNT_ID"
	EnvAccessKeyID     = "SCCACHE_ACCESS_KEY_ID"
	EnvSecretAccessKey = "SCCACHE_SECRET_ACCESS_KEY"
	EnvKeyPrefix       = "SCCACHE_KEY_PREFIX"
)

// Produced environment, in publishing order.
const (
	VarEndpoint        = "SCCACHE_ENDPOINT"
	VarBucket          = "SCCACHE_BUCKET"
	VarRegion          = "SCCACHE_REGION"
	VarKeyPrefix       = "SCCACHE_S3_KEY_PREFIX"
	VarBaseDir         = "SCCACHE_BASEDIR"
	VarAccessKeyID     = "AWS_ACCESS_KEY_ID"
	VarSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
	VarWrapper         = "RUSTC_WRAPPER"
)

// VarNames lists every variable Configure publishes, in order.
func VarNames() []string {
	return []string{
		VarEndpoint, VarBucket, VarRegion, VarKeyPrefix,
		VarBaseDir, VarAccessKeyID, VarSecretAccessKey, VarWrapper,
	}
}

// IsCredentialVar reports whether a produced variable holds a credential
// and must only ever be reported as set/unset.
func IsCredentialVar(name string) bool {
	return name == VarAccessKeyID || name == VarSecretAccessKey
}

// Config is the fully derived remote cache configuration.
type Config struct {
	Endpoint        string
	Bucket          string
	Region          string
	KeyPrefix       string
	BaseDir         string
	AccessKeyID     hostenv.Secret
	SecretAccessKey hostenv.Secret
	WrapperPath     string
}

// Options carry overrides from flags or a spec file. Empty fields fall back
// to the override environment variables, then to the fixed defaults.
type Options struct {
	Bucket    string
	KeyPrefix string
	Workspace string
}

// Configure derives the remote cache environment and publishes it to the
// process and to the job-wide environment file. A nil Config with a nil
// error means the account id secret is absent: remote caching is skipped
// and no sccache variable was touched.
func Configure(env *hostenv.Environment, opts Options) (*Config, error) {
	account := env.Secret(EnvAccountID)
	if !account.IsSet() {
		log.Infof("%s not set; remote cache disabled", EnvAccountID)
		return nil, nil
	}

	accessKey := env.Secret(EnvAccessKeyID)
	secretKey := env.Secret(EnvSecretAccessKey)
	if !accessKey.IsSet() || !secretKey.IsSet() {
		return nil, errors.Errorf("%s and %s must be set together with %s",
			EnvAccessKeyID, EnvSecretAccessKey, EnvAccountID)
	}

	// The wrapper variable must name the exact binary this run wired up.
	// Publishing a bare command name instead would make every later step
	// repeat the PATH lookup under a PATH we no longer control.
	resolved, err := env.LookPath("sccache")
	if err != nil {
		return nil, errors.Wrap(err, "sccache must be wired onto PATH before the remote cache is configured")
	}
	wrapper, err := filepath.Abs(resolved)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s", resolved)
	}

	cfg := &Config{
		Endpoint:        fmt.Sprintf(endpointTemplate, account.Reveal()),
		Bucket:          firstOf(opts.Bucket, env.Get(VarBucket), defaultBucket),
		Region:          regionAuto,
		KeyPrefix:       firstOf(opts.KeyPrefix, env.Get(EnvKeyPrefix), defaultKeyPrefix),
		BaseDir:         baseDir(env, opts.Workspace),
		AccessKeyID:     accessKey,
		SecretAccessKey: secretKey,
		WrapperPath:     wrapper,
	}
	if err := cfg.publish(env); err != nil {
		return nil, err
	}

	log.Infof("remote cache configured: %s/%s prefix %s", cfg.Endpoint, cfg.Bucket, cfg.KeyPrefix)
	return cfg, nil
}

func (c *Config) publish(env *hostenv.Environment) error {
	values := map[string]string{
		VarEndpoint:        c.Endpoint,
		VarBucket:          c.Bucket,
		VarRegion:          c.Region,
		VarKeyPrefix:       c.KeyPrefix,
		VarBaseDir:         c.BaseDir,
		VarAccessKeyID:     c.AccessKeyID.Reveal(),
		VarSecretAccessKey: c.SecretAccessKey.Reveal(),
		VarWrapper:         c.WrapperPath,
	}
	for _, name := range VarNames() {
		if err := env.Export(name, values[name]); err != nil {
			return errors.Wrapf(err, "publishing %s", name)
		}
	}
	return nil
}

func baseDir(env *hostenv.Environment, override string) string {
	if override != "" {
		return override
	}
	if ws := env.Get("GITHUB_WORKSPACE"); ws != "" {
		return ws
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func firstOf(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
