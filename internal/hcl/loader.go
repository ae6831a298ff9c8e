package hcl

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/addressspace/internal/config"
	"github.com/specialistvlad/addressspace/internal/ctxlog"
	"github.com/specialistvlad/addressspace/internal/fsutil"
)

// Extension is the file extension of HCL nodesets.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL nodeset loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every .hcl file under paths from the local file system.
// Directories are searched recursively in lexical order. A missing path is
// an error.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

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
		found, err := fsutil.FindFilesByExtension(p, Extension)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

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
		found, err := fsutil.FindFilesInFS(fsys, p, Extension, nil)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return l.parseAll(ctx, files, func(name string) ([]byte, error) {
		return fs.ReadFile(fsys, name)
	})
}

// Parse translates a single HCL document. filename is used in diagnostics.
func (l *Loader) Parse(ctx context.Context, src []byte, filename string) (*config.Model, error) {
	return l.parseFile(ctx, hclparse.NewParser(), src, filename)
}

func (l *Loader) parseAll(ctx context.Context, files []string, read func(string) ([]byte, error)) (*config.Model, error) {
	parser := hclparse.NewParser()
	model := &config.Model{}

	for _, file := range files {
		src, err := read(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read HCL file %s: %w", file, err)
		}
		m, err := l.parseFile(ctx, parser, src, file)
		if err != nil {
			return nil, err
		}
		model.Merge(m)
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("HCL loading complete.", "files", len(files), "namespaces", len(model.Namespaces), "nodes", len(model.Nodes), "references", len(model.References))
	return model, nil
}

func (l *Loader) parseFile(ctx context.Context, parser *hclparse.Parser, src []byte, filename string) (*config.Model, error) {
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	ctxlog.FromContext(ctx).Debug("Translating HCL file.", "file", path.Base(filename))
	return translate(&root)
}

// checkRemain rejects attributes and blocks the schema does not know.
func checkRemain(body hcl.Body) error {
	if body == nil {
		return nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return diags
	}
	for name, attr := range attrs {
		return fmt.Errorf("%s: unsupported attribute %q", attr.NameRange, name)
	}
	return nil
}

// sourceOf returns "file:line" for a decoded block.
func sourceOf(body hcl.Body) string {
	if body == nil {
		return ""
	}
	r := body.MissingItemRange()
	return fmt.Sprintf("%s:%d", r.Filename, r.Start.Line)
}
