package polarbars

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// IsGoogleStoragePath reports whether path addresses a Google Storage object.
func IsGoogleStoragePath(path string) bool {
	return strings.HasPrefix(path, "gs://")
}

// SplitGoogleStoragePath splits gs://bucket/path/to/object into its bucket and
// object name.
func SplitGoogleStoragePath(path string) (bucket, object string, err error) {
	// Detect the bucket and the path to the actual file
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

// OpenLocalOrGoogleStorage opens path for reading. gs:// paths are read
// through client, everything else from the local filesystem. A missing object
// or file yields an error that satisfies errors.Is(err, fs.ErrNotExist).
func OpenLocalOrGoogleStorage(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, int64, error) {
	if IsGoogleStoragePath(path) {
		if client == nil {
			return nil, 0, pfx.Err(fmt.Errorf("%s: a storage client is required for google storage paths", path))
		}

		bucketName, pathName, err := SplitGoogleStoragePath(path)
		if err != nil {
			return nil, 0, err
		}

		// Open the bucket with default credentials
		handle := client.Bucket(bucketName).Object(pathName)

		rdr, err := handle.NewReader(ctx)
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, 0, fmt.Errorf("%s: %w", path, fs.ErrNotExist)
		} else if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", path, err)
		}

		return rdr, rdr.Attrs.Size, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	fstat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	if fstat.IsDir() {
		f.Close()
		return nil, 0, fmt.Errorf("%s: is a directory", path)
	}

	return f, fstat.Size(), nil
}

// WriteLocalOrGoogleStorage hands write a writer for path and publishes the
// result only if write succeeds. Local files are written to a temporary file
// in the same directory and renamed into place, so a failed write leaves any
// existing file untouched. For gs:// paths the upload is canceled on failure
// instead of being committed.
func WriteLocalOrGoogleStorage(ctx context.Context, path string, client *storage.Client, write func(io.Writer) error) error {
	if IsGoogleStoragePath(path) {
		if client == nil {
			return pfx.Err(fmt.Errorf("%s: a storage client is required for google storage paths", path))
		}

		bucketName, pathName, err := SplitGoogleStoragePath(path)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		w := client.Bucket(bucketName).Object(pathName).NewWriter(ctx)
		if err := write(w); err != nil {
			// Canceling before Close abandons the upload
			cancel()
			w.Close()
			return err
		}

		// Google Storage reports upload failures on Close
		if err := w.Close(); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		return nil
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%s: %w", path, err)
	}
	// CreateTemp makes the file private; outputs get the usual permissions
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}

	return nil
}
