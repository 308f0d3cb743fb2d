package loam

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/adapters/fs"
	"github.com/aretw0/loam/pkg/core"
	"gopkg.in/yaml.v3"
)

// Frontmatter reads Markdown catalog documents. The frontmatter closes on the
// first line holding only "---", so rule bodies such as "81++91----71" stay
// intact. Loam's stock Markdown reader closes on the first "---" anywhere.
type Frontmatter struct{}

// WithFrontmatter registers Frontmatter for ".md" documents.
func WithFrontmatter() loam.Option {
	return loam.WithSerializer(".md", Frontmatter{})
}

// Parse implements fs.Serializer.
func (Frontmatter) Parse(r io.Reader, _ string) (*core.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := &core.Document{Metadata: make(core.Metadata)}
	first, rest, ok := cutLine(data)
	if !ok || string(first) != "---" {
		doc.Content = string(data)
		return doc, nil
	}

	front := rest
	for offset := 0; ; {
		line, next, ok := cutLine(rest[offset:])
		if string(line) == "---" {
			front = rest[:offset]
			doc.Content = string(next)
			break
		}
		if !ok {
			return nil, errors.New("frontmatter started but no closing delimiter found")
		}
		offset = len(rest) - len(next)
	}

	if err := yaml.Unmarshal(front, &doc.Metadata); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	if doc.Metadata == nil {
		doc.Metadata = make(core.Metadata)
	}
	return doc, nil
}

// Serialize implements fs.Serializer using Loam's Markdown layout.
func (Frontmatter) Serialize(doc core.Document, metadataKey string) ([]byte, error) {
	return fs.NewMarkdownSerializer(false).Serialize(doc, metadataKey)
}

// cutLine splits data after its first line. The line is returned without its
// terminator; ok is false when data holds no line break.
func cutLine(data []byte) (line, rest []byte, ok bool) {
	line, rest, ok = bytes.Cut(data, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r")), rest, ok
}

var _ fs.Serializer = Frontmatter{}
