package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookhub/internal/entities"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{"fantasy", "romance", "mystery", "sci-fi", "non-fiction"}, c.Genres())
	assert.Equal(t, 10, c.Len())
	assert.Len(t, c.All(), 10)

	scifi := c.Books("sci-fi")
	require.Len(t, scifi, 2)
	assert.Equal(t, "Dune", scifi[0].Title)
	assert.Equal(t, "The Martian", scifi[1].Title)

	romance := c.Books("romance")
	require.Len(t, romance, 2)
	assert.Equal(t, "Pride & Prejudice", romance[0].Title, "entities must survive sanitising")
}

func TestCatalog_AllFollowsGenreOrder(t *testing.T) {
	c, err := New(
		Genre{Name: "b", Books: []entities.Book{{Title: "B1", Author: "X"}, {Title: "B2", Author: "X"}}},
		Genre{Name: "a", Books: []entities.Book{{Title: "A1", Author: "Y"}}},
	)
	require.NoError(t, err)

	var titles []string
	for _, b := range c.All() {
		titles = append(titles, b.Title)
	}
	assert.Equal(t, []string{"B1", "B2", "A1"}, titles)
}

func TestCatalog_BooksReturnsCopy(t *testing.T) {
	c := Default()

	books := c.Books("fantasy")
	books[0].Title = "Changed"

	assert.Equal(t, "The Hobbit", c.Books("fantasy")[0].Title)
}

func TestCatalog_UnknownGenre(t *testing.T) {
	c := Default()

	assert.Nil(t, c.Books("poetry"))
	assert.False(t, c.HasGenre("poetry"))
	assert.True(t, c.HasGenre("mystery"))
}

func TestCatalog_Find(t *testing.T) {
	c := Default()

	book, err := c.Find(entities.BookRef{Title: "Sapiens", Author: "Yuval Noah Harari"})
	require.NoError(t, err)
	assert.Equal(t, "A brief history of humankind.", book.Summary)

	_, err = c.Find(entities.BookRef{Title: "sapiens", Author: "Yuval Noah Harari"})
	assert.True(t, errors.Is(err, ErrBookNotFound))
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Genre{Name: ""})
	assert.Error(t, err)

	_, err = New(Genre{Name: "a"}, Genre{Name: "a"})
	assert.Error(t, err)

	_, err = New(Genre{Name: "a", Books: []entities.Book{{Title: "No author"}}})
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	t.Run("keeps document order", func(t *testing.T) {
		c, err := Parse([]byte(`
zeta:
  - title: Z
    author: Someone
alpha:
  - title: A
    author: Someone
`))
		require.NoError(t, err)
		assert.Equal(t, []string{"zeta", "alpha"}, c.Genres())
	})

	t.Run("strips markup", func(t *testing.T) {
		c, err := Parse([]byte(`
odd:
  - title: "<b>Bold</b> Title"
    author: "<script>alert(1)</script>Author"
    cover: " https://example.com/c.jpg "
`))
		require.NoError(t, err)
		book := c.Books("odd")[0]
		assert.Equal(t, "Bold Title", book.Title)
		assert.Equal(t, "Author", book.Author)
		assert.Equal(t, "https://example.com/c.jpg", book.Cover)
		assert.Empty(t, book.Summary)
	})

	t.Run("rejects non-mapping root", func(t *testing.T) {
		_, err := Parse([]byte(`- just a list`))
		assert.Error(t, err)
	})

	t.Run("rejects empty document", func(t *testing.T) {
		_, err := Parse([]byte(``))
		assert.Error(t, err)
	})

	t.Run("rejects malformed genre", func(t *testing.T) {
		_, err := Parse([]byte(`fantasy: not-a-list`))
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Run("empty path uses default", func(t *testing.T) {
		c, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 10, c.Len())
	})

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "books.yaml")
		require.NoError(t, os.WriteFile(path, []byte("poetry:\n  - title: Odes\n    author: Keats\n"), 0644))

		c, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"poetry"}, c.Genres())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}
