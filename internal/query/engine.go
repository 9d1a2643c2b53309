// Package query filters the catalog by genre and free-text queries.
package query

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/mrlokans/bookhub/internal/catalog"
	"github.com/mrlokans/bookhub/internal/entities"
)

// AllGenres selects every genre.
const AllGenres = ""

// Query is the transient search state. It is recomputed from scratch on every
// search; nothing carries over between runs.
type Query struct {
	Genre  string `json:"genre" form:"genre"`
	Global string `json:"global" form:"global"`
	Local  string `json:"q" form:"q"`
}

// Run returns the books matching q in catalog order.
//
// The global query filters first; the local query then narrows that result
// further, so combining both yields their intersection. The returned slice is
// never nil.
func Run(cat *catalog.Catalog, q Query) []entities.Book {
	var results []entities.Book
	if q.Genre != AllGenres {
		results = cat.Books(q.Genre)
	} else {
		results = cat.All()
	}

	if g := strings.TrimSpace(q.Global); g != "" {
		results = filter(results, g)
	}
	if l := strings.TrimSpace(q.Local); l != "" {
		results = filter(results, l)
	}

	if results == nil {
		results = []entities.Book{}
	}
	return results
}

// Matches reports whether needle occurs in the book's title or author,
// ignoring case.
func Matches(b entities.Book, needle string) bool {
	n := fold(strings.TrimSpace(needle))
	return strings.Contains(fold(b.Title), n) || strings.Contains(fold(b.Author), n)
}

func filter(books []entities.Book, needle string) []entities.Book {
	n := fold(needle)
	out := make([]entities.Book, 0, len(books))
	for _, b := range books {
		if strings.Contains(fold(b.Title), n) || strings.Contains(fold(b.Author), n) {
			out = append(out, b)
		}
	}
	return out
}

// Casers keep state, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}
