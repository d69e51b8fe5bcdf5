package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"
)

// objectPrefix namespaces every stored wireframe image under the store root
// and inside the public URL path.
const objectPrefix = "wireframes"

// DiskStore is a Store backed by a local directory. Objects are written under
// root/wireframes/ and exposed as <baseURL>/files/wireframes/<name>; the
// router mounts the root directory at /files/.
type DiskStore struct {
	root    string
	baseURL string // scheme://host[:port], no trailing slash
	seq     atomic.Int64
}

// NewDiskStore ensures the backing directory exists and returns the store.
func NewDiskStore(root, publicBaseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(filepath.Join(root, objectPrefix), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &DiskStore{
		root:    root,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// Root returns the directory the router should serve at /files/.
func (s *DiskStore) Root() string { return s.root }

func (s *DiskStore) urlPrefix() string {
	return s.baseURL + "/files/" + objectPrefix + "/"
}

// Save streams the object to disk under a timestamp-derived name and returns
// its public URL. The write goes through a temp file and rename so a partially
// written object is never visible at its final name.
func (s *DiskStore) Save(ctx context.Context, ext string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ext = strings.ToLower(ext)
	if ext == "" {
		ext = ".png"
	}
	// Millisecond timestamps collide under concurrent uploads; a process-local
	// counter disambiguates without coordination.
	name := fmt.Sprintf("%d_%d%s", time.Now().UnixMilli(), s.seq.Add(1), ext)
	final := filepath.Join(s.root, objectPrefix, name)

	tmp, err := os.CreateTemp(filepath.Dir(final), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp object: %w", err)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close object: %w", err)
	}
	if err := os.Rename(tmp.Name(), final); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("publish object: %w", err)
	}
	return s.urlPrefix() + name, nil
}

// Owns reports whether url points into this store's public namespace.
func (s *DiskStore) Owns(url string) bool {
	_, err := s.localPath(url)
	return err == nil
}

// localPath maps a public URL back to its on-disk path, rejecting anything
// outside the object namespace (including traversal attempts).
func (s *DiskStore) localPath(url string) (string, error) {
	rel, ok := strings.CutPrefix(url, s.urlPrefix())
	if !ok {
		return "", ErrNotManaged
	}
	if rel == "" || rel != path.Base(rel) {
		return "", ErrNotManaged
	}
	return filepath.Join(s.root, objectPrefix, rel), nil
}

// Open returns the object content behind a public URL.
func (s *DiskStore) Open(ctx context.Context, url string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := s.localPath(url)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	return f, nil
}

// Delete removes the object behind a public URL.
func (s *DiskStore) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.localPath(url)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return ErrObjectNotFound
		}
		return err
	}
	return nil
}
