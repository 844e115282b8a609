package model

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/originals/internal/ctxlog"
	"github.com/specialistvlad/originals/internal/fsutil"
)

// ManifestExtension is the file extension of realm description manifests.
const ManifestExtension = ".hcl"

// ParseManifest parses manifest source held in memory.
func ParseManifest(ctx context.Context, src []byte, filePath string) (*Description, error) {
	return parseManifest(ctx, hclparse.NewParser(), src, filePath)
}

func parseManifest(ctx context.Context, parser *hclparse.Parser, src []byte, filePath string) (*Description, error) {
	hclFile, diags := parser.ParseHCL(src, filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", filePath, diags)
	}

	owners, diags := ParseManifestFile(ctx, hclFile, filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to process manifest definitions in %s: %w", filePath, diags)
	}

	return &Description{Interfaces: owners}, nil
}

// LoadDescriptionFromPath loads every manifest found under path, which may
// be a single file or a directory searched recursively.
func LoadDescriptionFromPath(ctx context.Context, path string) (*Description, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading manifests from path", "path", path)

	files, err := fsutil.FindFilesByExtension(path, ManifestExtension)
	if err != nil {
		return nil, fmt.Errorf("failed to find manifest files in %s: %w", path, err)
	}
	return loadFiles(ctx, files, fsutil.ReadFile, path)
}

// LoadDescription loads every manifest found in fsys. It is used for
// manifests embedded into the binary.
func LoadDescription(ctx context.Context, fsys fs.FS) (*Description, error) {
	files, err := fsutil.FindFilesByExtensionFS(fsys, ".", ManifestExtension)
	if err != nil {
		return nil, fmt.Errorf("failed to find embedded manifest files: %w", err)
	}
	return loadFiles(ctx, files, func(name string) ([]byte, error) { return fs.ReadFile(fsys, name) }, "embedded")
}

func loadFiles(ctx context.Context, files []string, read func(string) ([]byte, error), origin string) (*Description, error) {
	logger := ctxlog.FromContext(ctx)

	desc := NewDescription()
	if len(files) == 0 {
		logger.Warn("No .hcl manifest files found, returning empty description", "origin", origin)
		return desc, nil
	}

	parser := hclparse.NewParser()
	for _, file := range files {
		src, err := read(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest %s: %w", file, err)
		}
		part, err := parseManifest(ctx, parser, src, file)
		if err != nil {
			return nil, err
		}
		desc.Merge(part)
	}

	logger.Debug("Manifests loaded", "origin", origin, "files", len(files), "owners", len(desc.Interfaces))
	return desc, nil
}
