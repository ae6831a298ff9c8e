package config

import (
	"context"
	"io/fs"
)

// Loader is the interface for a format-specific nodeset loader.
type Loader interface {
	// Load reads every nodeset file found under paths and merges them into
	// one model, in path order.
	Load(ctx context.Context, paths ...string) (*Model, error)

	// LoadFS is like Load but reads from fsys, e.g. an embedded nodeset.
	LoadFS(ctx context.Context, fsys fs.FS, paths ...string) (*Model, error)
}
