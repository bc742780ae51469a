package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store is the object store the uploaders write to. The production
// implementation is disk-backed and served from the static mounts; tests
// substitute an in-memory fake.
type Store interface {
	// Put writes src under objectName, reporting whole-percent progress in
	// [0,100]. It honors ctx cancellation and cleans up partial objects.
	Put(ctx context.Context, objectName string, src io.Reader, size int64, progress func(pct int)) error
	// Delete removes an object. A missing object is not an error.
	Delete(objectName string) error
	// URL returns the public delivery URL for an object.
	URL(objectName string) string
	// ObjectNameFromURL derives the object name back from a delivery URL;
	// ok is false when the URL does not belong to this store.
	ObjectNameFromURL(url string) (name string, ok bool)
}

const copyChunkSize = 256 * 1024

type DiskStore struct {
	Root    string // filesystem root, e.g. ./static/uploads
	BaseURL string // public prefix, e.g. /static/uploads
}

func NewDiskStore(root, baseURL string) *DiskStore {
	if root == "" {
		root = "./static/uploads"
	}
	if baseURL == "" {
		baseURL = "/static/uploads"
	}
	return &DiskStore{Root: root, BaseURL: strings.TrimSuffix(baseURL, "/")}
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

func (s *DiskStore) Put(ctx context.Context, objectName string, src io.Reader, size int64, progress func(pct int)) error {
	destPath := filepath.Join(s.Root, filepath.FromSlash(objectName))
	if err := ensureDir(filepath.Dir(destPath)); err != nil {
		return err
	}

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}

	if progress != nil {
		progress(0)
	}

	var written int64
	buf := make([]byte, copyChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			out.Close()
			os.Remove(destPath)
			return err
		}

		n, readErr := src.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				out.Close()
				os.Remove(destPath)
				return writeErr
			}
			written += int64(n)
			if progress != nil && size > 0 {
				pct := int(written * 100 / size)
				if pct > 100 {
					pct = 100
				}
				progress(pct)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			out.Close()
			os.Remove(destPath)
			return readErr
		}
	}

	if err := out.Close(); err != nil {
		os.Remove(destPath)
		return err
	}
	if progress != nil {
		progress(100)
	}
	return nil
}

func (s *DiskStore) Delete(objectName string) error {
	destPath := filepath.Join(s.Root, filepath.FromSlash(objectName))
	err := os.Remove(destPath)
	if err != nil && os.IsNotExist(err) {
		// Idempotent delete: the object already being gone satisfies the
		// caller's postcondition.
		return nil
	}
	return err
}

func (s *DiskStore) URL(objectName string) string {
	return s.BaseURL + "/" + strings.TrimPrefix(objectName, "/")
}

// ObjectNameFromURL derives the object name back from a delivery URL. It
// understands this store's own URLs and the managed-storage /o/<path>
// pattern; ok is false when neither matches.
func (s *DiskStore) ObjectNameFromURL(url string) (string, bool) {
	if idx := strings.Index(url, s.BaseURL+"/"); idx >= 0 {
		name := url[idx+len(s.BaseURL)+1:]
		if q := strings.IndexByte(name, '?'); q >= 0 {
			name = name[:q]
		}
		if name != "" {
			return name, true
		}
		return "", false
	}
	if idx := strings.Index(url, "/o/"); idx >= 0 {
		name := url[idx+len("/o/"):]
		if q := strings.IndexByte(name, '?'); q >= 0 {
			name = name[:q]
		}
		if name != "" {
			return name, true
		}
	}
	return "", false
}
