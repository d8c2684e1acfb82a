package installer

import (
	"io"
	"net/http"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// httpGet is swapped out by tests to avoid the network.
var httpGet = http.Get

// downloadFile fetches url into file. A failed fetch is fatal to the run;
// there is deliberately no retry and no fallback mirror.
func downloadFile(file, url string) error {
	log.Infof("Downloading %s to %s", url, file)

	resp, err := httpGet(url)
	if err != nil {
		return errors.Wrapf(err, "fetching %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("fetching %s: %s", url, resp.Status)
	}

	dst, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, resp.Body); err != nil {
		return errors.Wrapf(err, "writing %s", file)
	}
	return nil
}
