package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookhub/internal/catalog"
	"github.com/mrlokans/bookhub/internal/controller"
	"github.com/mrlokans/bookhub/internal/entities"
	"github.com/mrlokans/bookhub/internal/query"
	"github.com/mrlokans/bookhub/internal/view"
)

type APIController struct {
	catalog *catalog.Catalog
}

func NewAPIController(cat *catalog.Catalog) *APIController {
	return &APIController{catalog: cat}
}

// BookResponse is a book as returned by the JSON API.
type BookResponse struct {
	entities.Book
	Favorite bool `json:"favorite"`
}

// BooksResponse is one query result.
type BooksResponse struct {
	Books      []BookResponse `json:"books"`
	Count      int            `json:"count"`
	CountLabel string         `json:"count_label"`
	Status     string         `json:"status,omitempty"`
}

// FavoritesResponse lists the client's favorites in insertion order.
type FavoritesResponse struct {
	Favorites []entities.Book `json:"favorites"`
	Count     int             `json:"count"`
}

// Genres lists the catalog genres in display order.
// GET /api/genres
func (ac *APIController) Genres(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"genres": ac.catalog.Genres()})
}

// Books runs a query without touching the client's grid.
// GET /api/books?genre=&q=&global=
func (ac *APIController) Books(c *gin.Context) {
	var q query.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBadRequest(c, "invalid query: "+err.Error())
		return
	}
	if q.Genre != query.AllGenres && !ac.catalog.HasGenre(q.Genre) {
		respondNotFound(c, "genre "+q.Genre)
		return
	}

	favorites := make(map[entities.BookRef]bool)
	for _, b := range currentController(c).Favorites() {
		favorites[b.Ref()] = true
	}

	results := query.Run(ac.catalog, q)
	books := make([]BookResponse, len(results))
	for i, b := range results {
		books[i] = BookResponse{Book: b, Favorite: favorites[b.Ref()]}
	}

	c.JSON(http.StatusOK, BooksResponse{
		Books:      books,
		Count:      len(books),
		CountLabel: view.CountLabel(len(books)),
		Status:     view.StatusLine(q.Global),
	})
}

// Favorites lists the client's favorites.
// GET /api/favorites
func (ac *APIController) Favorites(c *gin.Context) {
	respondFavorites(c, currentController(c))
}

// ToggleFavorite adds or removes one book.
// POST /api/favorites/toggle {"title": "...", "author": "..."}
func (ac *APIController) ToggleFavorite(c *gin.Context) {
	ac.dispatchRef(c, controller.ActionToggleFavorite)
}

// RemoveFavorite removes one book; removing an absent book succeeds.
// DELETE /api/favorites {"title": "...", "author": "..."}
func (ac *APIController) RemoveFavorite(c *gin.Context) {
	ac.dispatchRef(c, controller.ActionRemoveFavorite)
}

// ClearFavorites removes every favorite. The caller confirms with
// confirm=true.
// DELETE /api/favorites/all?confirm=true
func (ac *APIController) ClearFavorites(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusPreconditionRequired, ErrorResponse{
			Error: controller.ClearPrompt + " Repeat with confirm=true.",
			Code:  "confirmation_required",
		})
		return
	}

	ctrl := currentController(c)
	ev := controller.Event{
		Action:  controller.ActionClearFavorites,
		Confirm: func(string) bool { return true },
	}
	if err := ctrl.Dispatch(c.Request.Context(), ev); err != nil {
		respondDispatchError(c, err, ev.Action)
		return
	}
	respondFavorites(c, ctrl)
}

func (ac *APIController) dispatchRef(c *gin.Context, action controller.Action) {
	var ref entities.BookRef
	if err := c.ShouldBindJSON(&ref); err != nil {
		respondBadRequest(c, "invalid book reference: "+err.Error())
		return
	}
	if ref.Title == "" || ref.Author == "" {
		respondBadRequest(c, "title and author are required")
		return
	}

	ctrl := currentController(c)
	if err := ctrl.Dispatch(c.Request.Context(), controller.Event{Action: action, Book: ref}); err != nil {
		respondDispatchError(c, err, action)
		return
	}
	respondFavorites(c, ctrl)
}

func respondFavorites(c *gin.Context, ctrl *controller.Controller) {
	books := ctrl.Favorites()
	c.JSON(http.StatusOK, FavoritesResponse{Favorites: books, Count: len(books)})
}
