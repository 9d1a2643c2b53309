package view

import (
	"fmt"
	"io"
	"strings"
)

// Terminal rendering used by the interactive shell.

func WriteGridHeader(w io.Writer, g Grid) {
	if g.Status != "" {
		fmt.Fprintln(w, g.Status)
	}
	fmt.Fprintln(w, g.CountLabel)
	if g.Empty {
		fmt.Fprintln(w, "No books match your search.")
	}
}

func WriteCard(w io.Writer, c Card) {
	heart := "♡"
	if c.Favorite {
		heart = "♥"
	}
	fmt.Fprintf(w, "%2d. %s %s — %s\n", c.Index+1, heart, c.Book.Title, c.Book.Author)
}

func WriteDetail(w io.Writer, d *Detail) {
	if d == nil {
		return
	}
	fmt.Fprintln(w, strings.Repeat("─", 40))
	fmt.Fprintln(w, d.Title)
	fmt.Fprintln(w, d.Author)
	if d.Cover != "" {
		fmt.Fprintf(w, "Cover: %s\n", d.Cover)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, d.Summary)
	fmt.Fprintln(w, strings.Repeat("─", 40))
}

func WriteFavorites(w io.Writer, p FavoritesPanel) {
	fmt.Fprintf(w, "Favorites (%d)\n", p.Count)
	if p.Empty() {
		fmt.Fprintln(w, "  "+p.Placeholder())
		return
	}
	for i, row := range p.Rows {
		fmt.Fprintf(w, "  %d. %s — %s\n", i+1, row.Title, row.Author)
	}
}
