// Package catalog holds the fixed genre-to-books mapping every query runs
// against.
//
// A Catalog is built once at startup, either from the embedded default
// books.yaml or from a YAML file with the same shape, and is never mutated
// afterwards. Genre order is the order of the keys in the YAML document.
//
// # Usage
//
//	cat, err := catalog.Load("")          // embedded default
//	cat, err := catalog.Load("books.yaml") // custom file
//	for _, genre := range cat.Genres() { ... }
package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/mrlokans/bookhub/internal/entities"
)

//go:embed books.yaml
var defaultCatalog []byte

// ErrBookNotFound is returned when no catalog book matches a (title, author) pair.
var ErrBookNotFound = errors.New("book not found")

// Genre is one named, ordered shelf of the catalog.
type Genre struct {
	Name  string
	Books []entities.Book
}

// Catalog is an immutable, ordered mapping from genre name to books.
type Catalog struct {
	genres []string
	books  map[string][]entities.Book
}

// New builds a catalog from the given genres, preserving their order.
func New(genres ...Genre) (*Catalog, error) {
	c := &Catalog{
		genres: make([]string, 0, len(genres)),
		books:  make(map[string][]entities.Book, len(genres)),
	}

	for _, g := range genres {
		if g.Name == "" {
			return nil, fmt.Errorf("genre name is empty")
		}
		if _, exists := c.books[g.Name]; exists {
			return nil, fmt.Errorf("duplicate genre %q", g.Name)
		}
		for i, b := range g.Books {
			if b.Title == "" || b.Author == "" {
				return nil, fmt.Errorf("genre %q: book %d has no title or author", g.Name, i)
			}
		}

		books := make([]entities.Book, len(g.Books))
		copy(books, g.Books)
		c.genres = append(c.genres, g.Name)
		c.books[g.Name] = books
	}

	return c, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Genres returns the genre names in catalog order.
func (c *Catalog) Genres() []string {
	out := make([]string, len(c.genres))
	copy(out, c.genres)
	return out
}

// HasGenre reports whether the catalog has a genre with this exact name.
func (c *Catalog) HasGenre(name string) bool {
	_, ok := c.books[name]
	return ok
}

// Books returns a copy of one genre's books. Unknown genres yield nil.
func (c *Catalog) Books(genre string) []entities.Book {
	books, ok := c.books[genre]
	if !ok {
		return nil
	}
	out := make([]entities.Book, len(books))
	copy(out, books)
	return out
}

// All returns every book, genres concatenated in catalog order.
func (c *Catalog) All() []entities.Book {
	out := make([]entities.Book, 0, c.Len())
	for _, g := range c.genres {
		out = append(out, c.books[g]...)
	}
	return out
}

// Len returns the total number of books across all genres.
func (c *Catalog) Len() int {
	n := 0
	for _, books := range c.books {
		n += len(books)
	}
	return n
}

// Find returns the first book in catalog order with the given identity.
func (c *Catalog) Find(ref entities.BookRef) (entities.Book, error) {
	for _, g := range c.genres {
		for _, b := range c.books[g] {
			if b.Is(ref) {
				return b, nil
			}
		}
	}
	return entities.Book{}, fmt.Errorf("%q by %q: %w", ref.Title, ref.Author, ErrBookNotFound)
}
