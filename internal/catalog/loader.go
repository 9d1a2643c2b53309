package catalog

import (
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"

	"github.com/mrlokans/bookhub/internal/entities"
)

// Load reads a catalog from a YAML file. An empty path returns the embedded
// default catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML document mapping genre names to book lists. The
// document's key order becomes the catalog's genre order. Markup in text
// fields is stripped.
func Parse(data []byte) (*Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("catalog document is empty")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("catalog root must be a mapping of genre to books, got line %d", root.Line)
	}

	policy := bluemonday.StrictPolicy()
	genres := make([]Genre, 0, len(root.Content)/2)

	// Mapping nodes alternate key, value.
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]

		var books []entities.Book
		if err := valueNode.Decode(&books); err != nil {
			return nil, fmt.Errorf("genre %q (line %d): %w", keyNode.Value, valueNode.Line, err)
		}

		for j := range books {
			books[j] = sanitizeBook(policy, books[j])
		}

		genres = append(genres, Genre{Name: strings.TrimSpace(keyNode.Value), Books: books})
	}

	return New(genres...)
}

func sanitizeBook(policy *bluemonday.Policy, b entities.Book) entities.Book {
	return entities.Book{
		Title:   sanitizeText(policy, b.Title),
		Author:  sanitizeText(policy, b.Author),
		Cover:   strings.TrimSpace(b.Cover),
		Summary: sanitizeText(policy, b.Summary),
	}
}

// sanitizeText strips tags and returns plain text. bluemonday escapes its
// output, templates escape again, so entities are decoded here.
func sanitizeText(policy *bluemonday.Policy, s string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
}
