package receipt

import (
	"context"
	"io"
)

// Store keeps receipt images under slash separated references.
type Store interface {
	Put(ctx context.Context, ref string, contentType string, data []byte) error
	// Get returns ErrReceiptNotFound for unknown references.
	Get(ctx context.Context, ref string) (io.ReadCloser, error)
	// List returns the references starting with prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
