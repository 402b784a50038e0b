package interfaces

import (
	"context"
	"io"
)

// ObjectStore accepts binary uploads under a caller-chosen path and returns a
// publicly resolvable URL. Implementations never delete superseded objects;
// orphan cleanup is out of scope for callers.
type ObjectStore interface {
	Put(ctx context.Context, path string, contentType string, body io.Reader) (url string, err error)
}
