package remotecache

import (
	"context"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Preflight probes the configured bucket with the configured credentials.
// R2 speaks the S3 API, so the probe uses a plain S3-compatible client. A
// failed probe is fatal to the run: a configured but unreachable backend
// would disable cache sharing without any visible error until the stats
// show a 0% hit rate much later.
func Preflight(ctx context.Context, cfg *Config) error {
	host := strings.TrimPrefix(cfg.Endpoint, "https://")
	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID.Reveal(), cfg.SecretAccessKey.Reveal(), ""),
		Secure: true,
		Region: cfg.Region,
	})
	if err != nil {
		return errors.Wrap(err, "creating storage client")
	}

	found, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return errors.Wrapf(err, "probing bucket %s at %s", cfg.Bucket, cfg.Endpoint)
	}
	if !found {
		return errors.Errorf("bucket %s not found at %s", cfg.Bucket, cfg.Endpoint)
	}

	log.Infof("bucket %s reachable at %s", cfg.Bucket, cfg.Endpoint)
	return nil
}
