package loam

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/penrose/pkg/domain"
	"github.com/aretw0/penrose/pkg/tiling"
)

// Catalog adapts a Loam repository of tiling documents to ports.TilingSource.
//
// A document is either Markdown with the definition in its frontmatter and
// the description in its body, or a plain ".yaml", ".yml" or ".json" file
// whose top-level keys are the definition fields. A document that exists but
// cannot be parsed is reported as an error, never as a missing tiling.
type Catalog struct {
	Repo *loam.TypedRepository[TilingMetadata]
}

// New creates a catalog over an existing typed repository.
func New(repo *loam.TypedRepository[TilingMetadata]) *Catalog {
	return &Catalog{
		Repo: repo,
	}
}

// Open initialises a read-only, strict Loam repository at dir with the
// Frontmatter reader for Markdown documents.
func Open(dir string) (*Catalog, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve catalog path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
		WithFrontmatter(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return New(loam.NewTypedRepository[TilingMetadata](repo)), nil
}

// Get resolves a tiling by document ID (with or without extension) or by its
// declared name.
func (c *Catalog) Get(ctx context.Context, name string) (domain.Tiling, error) {
	doc, err := c.Repo.Get(ctx, name)
	if err == nil {
		return compile(doc.ID, doc.Data, doc.Content)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return domain.Tiling{}, fmt.Errorf("catalog document %s: %w", name, err)
	}

	docs, err := c.Repo.List(ctx)
	if err != nil {
		return domain.Tiling{}, fmt.Errorf("loam list failed: %w", err)
	}
	for _, doc := range docs {
		if tilingName(doc.ID, doc.Data) == name {
			return compile(doc.ID, doc.Data, doc.Content)
		}
	}
	return domain.Tiling{}, fmt.Errorf("%w: %s", domain.ErrTilingNotFound, name)
}

// List returns the declared names of every document, sorted.
func (c *Catalog) List(ctx context.Context) ([]string, error) {
	docs, err := c.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		name := tilingName(doc.ID, doc.Data)
		if existing, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: tiling '%s' is defined in both '%s' and '%s'", name, existing, doc.ID)
		}
		seen[name] = doc.ID
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func tilingName(docID string, meta TilingMetadata) string {
	if meta.Name != "" {
		return meta.Name
	}
	return trimExtension(docID)
}

func compile(docID string, meta TilingMetadata, content string) (domain.Tiling, error) {
	def := tiling.Definition{
		Name:        tilingName(docID, meta),
		Description: meta.Description,
		Angle:       meta.Angle,
		Seed:        meta.Seed,
		Rules:       meta.Rules,
	}
	if def.Description == "" {
		def.Description = strings.TrimSpace(content)
	}
	t, err := tiling.Compile(def)
	if err != nil {
		return domain.Tiling{}, fmt.Errorf("catalog document %s: %w", docID, err)
	}
	return t, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
