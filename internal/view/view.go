// Package view turns query results and favorites into the models the front
// ends render: cards with reveal delays, the detail view, the favorites panel
// and the count, empty and status indicators.
package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/mrlokans/bookhub/internal/entities"
)

const (
	NoSummary   = "No summary available."
	NoFavorites = "No favorites yet."
)

// Card is one book in the grid.
type Card struct {
	Index    int
	Book     entities.Book
	Favorite bool
	Delay    time.Duration
}

// DelayMillis is the reveal delay in milliseconds, for CSS.
func (c Card) DelayMillis() int64 {
	return c.Delay.Milliseconds()
}

// Grid is the rendered result set.
type Grid struct {
	Generation uint64
	Cards      []Card
	Count      int
	CountLabel string
	Empty      bool
	Status     string
}

// Detail is the modal view of one book.
type Detail struct {
	Title   string
	Author  string
	Cover   string
	Summary string
}

// FavoriteRow is one line of the favorites panel.
type FavoriteRow struct {
	Title  string
	Author string
}

// FavoritesPanel lists the client's favorites.
type FavoritesPanel struct {
	Open  bool
	Rows  []FavoriteRow
	Count int
}

// Empty reports whether the panel shows the placeholder.
func (p FavoritesPanel) Empty() bool {
	return len(p.Rows) == 0
}

// Placeholder is the text shown when there are no favorites.
func (p FavoritesPanel) Placeholder() string {
	return NoFavorites
}

// CountLabel pluralises the result count: "0 books", "1 book", "2 books".
func CountLabel(n int) string {
	if n == 1 {
		return "1 book"
	}
	return fmt.Sprintf("%d books", n)
}

// StatusLine describes an active global query, or is empty. The query is
// shown as typed.
func StatusLine(global string) string {
	if strings.TrimSpace(global) == "" {
		return ""
	}
	return fmt.Sprintf("Results for \"%s\"", global)
}

// NewCards builds cards for books. isFavorite decides the toggle state and
// delay gives the reveal delay for an index.
func NewCards(books []entities.Book, isFavorite func(entities.BookRef) bool, delay func(int) time.Duration) []Card {
	cards := make([]Card, len(books))
	for i, b := range books {
		cards[i] = Card{
			Index:    i,
			Book:     b,
			Favorite: isFavorite != nil && isFavorite(b.Ref()),
			Delay:    delay(i),
		}
	}
	return cards
}

// NewGrid wraps cards with the count and empty indicators.
func NewGrid(gen uint64, cards []Card, status string) Grid {
	return Grid{
		Generation: gen,
		Cards:      cards,
		Count:      len(cards),
		CountLabel: CountLabel(len(cards)),
		Empty:      len(cards) == 0,
		Status:     status,
	}
}

// NewDetail builds the detail view, substituting a placeholder for a missing
// summary.
func NewDetail(b entities.Book) *Detail {
	summary := b.Summary
	if summary == "" {
		summary = NoSummary
	}
	return &Detail{
		Title:   b.Title,
		Author:  b.Author,
		Cover:   b.Cover,
		Summary: summary,
	}
}

// NewFavoritesPanel builds the panel from the favorites in insertion order.
func NewFavoritesPanel(books []entities.Book, open bool) FavoritesPanel {
	rows := make([]FavoriteRow, len(books))
	for i, b := range books {
		rows[i] = FavoriteRow{Title: b.Title, Author: b.Author}
	}
	return FavoritesPanel{Open: open, Rows: rows, Count: len(rows)}
}
