package app

import (
	"context"
	"fmt"
	"runtime"

	"github.com/specialistvlad/addressspace/internal/config"
	"github.com/specialistvlad/addressspace/internal/ctxlog"
	"github.com/specialistvlad/addressspace/internal/nodeset"
	"golang.org/x/sync/errgroup"
)

// loadNodesets parses the standard nodeset and every configured file in
// parallel and merges the results in configuration order.
func (a *App) loadNodesets(ctx context.Context) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, p := range a.config.NodesetPaths {
		found, err := nodeset.Files(p)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	logger.Debug("Discovered nodeset files.", "count", len(files))

	models := make([]*config.Model, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range files {
		g.Go(func() error {
			m, err := nodeset.LoadFile(gctx, f)
			if err != nil {
				return fmt.Errorf("error loading %s: %w", f, err)
			}
			models[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &config.Model{}
	for _, uri := range a.config.Namespaces {
		merged.Namespaces = append(merged.Namespaces, &config.Namespace{URI: uri})
	}
	if !a.config.SkipStandard {
		std, err := nodeset.LoadStandard(ctx)
		if err != nil {
			return nil, err
		}
		merged.Merge(std)
	}
	for _, m := range models {
		merged.Merge(m)
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}
