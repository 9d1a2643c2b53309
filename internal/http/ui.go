package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookhub/internal/controller"
	"github.com/mrlokans/bookhub/internal/entities"
	"github.com/mrlokans/bookhub/internal/query"
)

// confirmClearParam asks the page to show the clear confirmation.
const confirmClearParam = "confirm"

type UIController struct {
	version string
}

func NewUIController(version string) *UIController {
	return &UIController{version: version}
}

type pageData struct {
	Screen       controller.Screen
	CSRFToken    string
	ConfirmClear bool
	ClearPrompt  string
	Version      string
}

// actionForm is every field a UI action may carry.
type actionForm struct {
	Genre   string `form:"genre"`
	Global  string `form:"global"`
	Local   string `form:"q"`
	Title   string `form:"title"`
	Author  string `form:"author"`
	Key     string `form:"key"`
	Focus   string `form:"focus"`
	Confirm string `form:"confirm"`
}

func (f actionForm) event(action controller.Action) controller.Event {
	confirmed := f.Confirm == "yes"
	return controller.Event{
		Action:  action,
		Query:   query.Query{Genre: f.Genre, Global: f.Global, Local: f.Local},
		Book:    entities.BookRef{Title: f.Title, Author: f.Author},
		Key:     controller.Key(f.Key),
		Focus:   controller.Focus(f.Focus),
		Confirm: func(string) bool { return confirmed },
	}
}

// Index renders the client's current screen.
// GET /
func (uc *UIController) Index(c *gin.Context) {
	ctrl := currentController(c)

	c.HTML(http.StatusOK, "index.html", pageData{
		Screen:       ctrl.Snapshot(),
		CSRFToken:    csrfToken(c),
		ConfirmClear: c.Query(confirmClearParam) == "clear",
		ClearPrompt:  controller.ClearPrompt,
		Version:      uc.version,
	})
}

// Action dispatches one form action and redirects back to the page.
// POST /actions/:action
func (uc *UIController) Action(c *gin.Context) {
	action := controller.Action(c.Param("action"))

	var form actionForm
	if err := c.ShouldBind(&form); err != nil {
		respondBadRequest(c, "invalid form: "+err.Error())
		return
	}

	// Clearing needs an explicit yes; without one the page asks first.
	if action == controller.ActionClearFavorites && form.Confirm != "yes" {
		c.Redirect(http.StatusSeeOther, "/?"+confirmClearParam+"=clear")
		return
	}

	if err := currentController(c).Dispatch(c.Request.Context(), form.event(action)); err != nil {
		respondDispatchError(c, err, action)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}
