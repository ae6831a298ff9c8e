// Package nodeset embeds the base model of namespace 0 and loads nodeset
// files by extension.
package nodeset

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/specialistvlad/addressspace/internal/config"
	"github.com/specialistvlad/addressspace/internal/ctxlog"
	"github.com/specialistvlad/addressspace/internal/fsutil"
	"github.com/specialistvlad/addressspace/internal/hcl"
	"github.com/specialistvlad/addressspace/internal/yaml"
)

// StandardFile is the name of the embedded base model.
const StandardFile = "standard.hcl"

//go:embed standard.hcl
var standardFS embed.FS

// LoadStandard returns the embedded base model.
func LoadStandard(ctx context.Context) (*config.Model, error) {
	m, err := hcl.NewLoader().LoadFS(ctx, standardFS, StandardFile)
	if err != nil {
		return nil, fmt.Errorf("error loading standard nodeset: %w", err)
	}
	return m, nil
}

// LoaderFor returns the loader handling files with the extension of path.
func LoaderFor(path string) (config.Loader, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == hcl.Extension:
		return hcl.NewLoader(), true
	case slices.Contains(yaml.Extensions, ext):
		return yaml.NewLoader(), true
	}
	return nil, false
}

// Files expands path into the nodeset files it names. A directory yields
// every HCL and YAML file below it, in lexical order.
func Files(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}
	if !info.IsDir() {
		if _, ok := LoaderFor(path); !ok {
			return nil, fmt.Errorf("unsupported nodeset file %s", path)
		}
		return []string{path}, nil
	}

	var files []string
	for _, ext := range append([]string{hcl.Extension}, yaml.Extensions...) {
		found, err := fsutil.FindFilesByExtension(path, ext)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	slices.Sort(files)
	return files, nil
}

// LoadFile loads one nodeset file with the loader matching its extension.
func LoadFile(ctx context.Context, path string) (*config.Model, error) {
	l, ok := LoaderFor(path)
	if !ok {
		return nil, fmt.Errorf("unsupported nodeset file %s", path)
	}
	ctxlog.FromContext(ctx).Debug("Loading nodeset file.", "path", path)
	return l.Load(ctx, path)
}
