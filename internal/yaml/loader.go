package yaml

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/specialistvlad/addressspace/internal/config"
	"github.com/specialistvlad/addressspace/internal/ctxlog"
	"github.com/specialistvlad/addressspace/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// Extensions are the file extensions of YAML nodesets.
var Extensions = []string{".yaml", ".yml"}

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new YAML nodeset loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every YAML file under paths from the local file system.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		for _, ext := range Extensions {
			found, err := fsutil.FindFilesByExtension(p, ext)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
		}
	}
	return l.parseAll(ctx, files, os.ReadFile)
}

// LoadFS is like Load but reads from fsys.
func (l *Loader) LoadFS(ctx context.Context, fsys fs.FS, paths ...string) (*config.Model, error) {
	var files []string
	for _, p := range paths {
		info, err := fs.Stat(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		for _, ext := range Extensions {
			found, err := fsutil.FindFilesInFS(fsys, p, ext, nil)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
		}
	}
	return l.parseAll(ctx, files, func(name string) ([]byte, error) {
		return fs.ReadFile(fsys, name)
	})
}

// Parse translates a single YAML document. filename is used in errors.
func (l *Loader) Parse(ctx context.Context, src []byte, filename string) (*config.Model, error) {
	return parseFile(ctx, src, filename)
}

func (l *Loader) parseAll(ctx context.Context, files []string, read func(string) ([]byte, error)) (*config.Model, error) {
	model := &config.Model{}
	for _, file := range files {
		src, err := read(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read YAML file %s: %w", file, err)
		}
		m, err := parseFile(ctx, src, file)
		if err != nil {
			return nil, err
		}
		model.Merge(m)
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("YAML loading complete.", "files", len(files), "nodes", len(model.Nodes))
	return model, nil
}

func parseFile(ctx context.Context, src []byte, filename string) (*config.Model, error) {
	var doc fileYAML
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML file %s: %w", filename, err)
	}
	ctxlog.FromContext(ctx).Debug("Translating YAML file.", "file", filename, "nodes", len(doc.Nodes))
	return translate(&doc, filename)
}
