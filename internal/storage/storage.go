// Package storage persists uploaded wireframe images and serves them back
// through stable public URLs. The interface is deliberately small so the
// service layer can swap the disk implementation for an in-memory one in
// tests.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotManaged is returned by Delete when the given URL was not produced by
// this store and therefore cannot be mapped to a local object.
var ErrNotManaged = errors.New("url not managed by this store")

// ErrObjectNotFound is returned when the referenced object does not exist.
var ErrObjectNotFound = errors.New("object not found")

// Store saves image objects and resolves them back from their public URLs.
type Store interface {
	// Save writes the object and returns its public URL. ext is the file
	// extension including the dot (".png"); an empty ext defaults to ".png".
	Save(ctx context.Context, ext string, r io.Reader) (string, error)

	// Open returns the object behind a public URL previously issued by Save.
	Open(ctx context.Context, url string) (io.ReadCloser, error)

	// Delete removes the object behind a public URL. Deleting an already
	// deleted object returns ErrObjectNotFound.
	Delete(ctx context.Context, url string) error

	// Owns reports whether url was issued by this store.
	Owns(url string) bool
}
