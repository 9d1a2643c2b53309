package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBook_Is(t *testing.T) {
	book := Book{Title: "Dune", Author: "Frank Herbert"}

	assert.True(t, book.Is(BookRef{Title: "Dune", Author: "Frank Herbert"}))
	assert.False(t, book.Is(BookRef{Title: "dune", Author: "Frank Herbert"}))
	assert.False(t, book.Is(BookRef{Title: "Dune", Author: "Brian Herbert"}))
	assert.Equal(t, BookRef{Title: "Dune", Author: "Frank Herbert"}, book.Ref())
}
