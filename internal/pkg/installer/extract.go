package installer

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/pkg/errors"
)

// extractBinary walks the gzipped tarball at archive and writes the first
// regular-file member named name (by base name; release tarballs nest the
// binary under a versioned directory) into destDir with the executable bit
// set. Returns the path of the extracted file.
func extractBinary(archive, name, destDir string) (string, error) {
	f, err := os.Open(archive)
	if err != nil {
		return "", err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return "", errors.Wrapf(err, "decompressing %s", archive)
	}
	defer gz.Close()

	r := tar.NewReader(gz)
	for {
		h, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.Wrapf(err, "reading %s", archive)
		}
		if h.Typeflag != tar.TypeReg || path.Base(h.Name) != name {
			continue
		}

		out := filepath.Join(destDir, name)
		dst, err := os.OpenFile(out, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0755)
		if err != nil {
			return "", err
		}
		if _, err := io.Copy(dst, r); err != nil {
			dst.Close()
			return "", errors.Wrapf(err, "extracting %s", h.Name)
		}
		if err := dst.Close(); err != nil {
			return "", err
		}
		return out, nil
	}

	return "", errors.Errorf("archive %s does not contain %s", archive, name)
}
