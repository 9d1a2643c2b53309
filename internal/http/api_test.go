package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v))
	return v
}

func TestAPIController_Genres(t *testing.T) {
	env := setupTestEnv(t)

	w := env.get("/api/genres")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string][]string](t, w.Body.Bytes())
	assert.Equal(t, []string{"fantasy", "romance", "mystery", "sci-fi", "non-fiction"}, resp["genres"])
}

func TestAPIController_Books(t *testing.T) {
	tests := []struct {
		name   string
		target string
		titles []string
		label  string
		status string
	}{
		{
			name:   "all genres",
			target: "/api/books",
			label:  "10 books",
		},
		{
			name:   "genre",
			target: "/api/books?genre=mystery",
			titles: []string{"Gone Girl", "The Hound of the Baskervilles"},
			label:  "2 books",
		},
		{
			name:   "global and local intersect",
			target: "/api/books?global=the&q=martian",
			titles: []string{"The Martian"},
			label:  "1 book",
			status: `Results for "the"`,
		},
		{
			name:   "no match",
			target: "/api/books?q=zzz",
			titles: []string{},
			label:  "0 books",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnv(t)

			w := env.get(tt.target)

			require.Equal(t, http.StatusOK, w.Code)
			resp := decode[BooksResponse](t, w.Body.Bytes())
			assert.Equal(t, tt.label, resp.CountLabel)
			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, len(resp.Books), resp.Count)
			if tt.titles != nil {
				titles := []string{}
				for _, b := range resp.Books {
					titles = append(titles, b.Title)
				}
				assert.Equal(t, tt.titles, titles)
			}
		})
	}
}

func TestAPIController_BooksUnknownGenre(t *testing.T) {
	env := setupTestEnv(t)

	w := env.get("/api/books?genre=poetry")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIController_BooksDoNotTouchGrid(t *testing.T) {
	env := setupTestEnv(t)

	env.get("/api/books?genre=sci-fi")

	assert.True(t, env.controller(t).Snapshot().Grid.Empty)
}

func TestAPIController_ToggleFavorite(t *testing.T) {
	env := setupTestEnv(t)
	body := `{"title":"Dune","author":"Frank Herbert"}`

	w := env.sendJSON(http.MethodPost, "/api/favorites/toggle", body)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[FavoritesResponse](t, w.Body.Bytes())
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "Dune", resp.Favorites[0].Title)
	assert.Equal(t, "Desert planet, politics and prophecy.", resp.Favorites[0].Summary)

	books := decode[BooksResponse](t, env.get("/api/books?genre=sci-fi").Body.Bytes())
	assert.True(t, books.Books[0].Favorite)
	assert.False(t, books.Books[1].Favorite)

	w = env.sendJSON(http.MethodPost, "/api/favorites/toggle", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decode[FavoritesResponse](t, w.Body.Bytes()).Count)
}

func TestAPIController_ToggleValidation(t *testing.T) {
	env := setupTestEnv(t)

	assert.Equal(t, http.StatusBadRequest, env.sendJSON(http.MethodPost, "/api/favorites/toggle", `{not json`).Code)
	assert.Equal(t, http.StatusBadRequest, env.sendJSON(http.MethodPost, "/api/favorites/toggle", `{"title":"Dune"}`).Code)
	assert.Equal(t, http.StatusNotFound, env.sendJSON(http.MethodPost, "/api/favorites/toggle", `{"title":"Nope","author":"Nobody"}`).Code)
}

func TestAPIController_RemoveFavorite(t *testing.T) {
	env := setupTestEnv(t)
	env.sendJSON(http.MethodPost, "/api/favorites/toggle", `{"title":"Sapiens","author":"Yuval Noah Harari"}`)

	// Absent pair succeeds and leaves the list alone.
	w := env.sendJSON(http.MethodDelete, "/api/favorites", `{"title":"Dune","author":"Frank Herbert"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[FavoritesResponse](t, w.Body.Bytes()).Count)

	w = env.sendJSON(http.MethodDelete, "/api/favorites", `{"title":"Sapiens","author":"Yuval Noah Harari"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decode[FavoritesResponse](t, w.Body.Bytes()).Count)
}

func TestAPIController_ClearFavorites(t *testing.T) {
	env := setupTestEnv(t)
	env.sendJSON(http.MethodPost, "/api/favorites/toggle", `{"title":"Sapiens","author":"Yuval Noah Harari"}`)
	env.sendJSON(http.MethodPost, "/api/favorites/toggle", `{"title":"Dune","author":"Frank Herbert"}`)

	w := env.sendJSON(http.MethodDelete, "/api/favorites/all", "")
	assert.Equal(t, http.StatusPreconditionRequired, w.Code)
	assert.Contains(t, w.Body.String(), "confirmation_required")
	assert.Equal(t, 2, decode[FavoritesResponse](t, env.get("/api/favorites").Body.Bytes()).Count)

	w = env.sendJSON(http.MethodDelete, "/api/favorites/all?confirm=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decode[FavoritesResponse](t, w.Body.Bytes()).Count)
}

func TestAPIController_FavoritesPersistAcrossControllers(t *testing.T) {
	env := setupTestEnv(t)
	env.sendJSON(http.MethodPost, "/api/favorites/toggle", `{"title":"Gone Girl","author":"Gillian Flynn"}`)

	// Dropping the in-memory controller forces a reload from the slot table.
	env.registry.Close()

	resp := decode[FavoritesResponse](t, env.get("/api/favorites").Body.Bytes())
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "Gone Girl", resp.Favorites[0].Title)
}
