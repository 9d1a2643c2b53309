package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookhub/internal/catalog"
	"github.com/mrlokans/bookhub/internal/controller"
	"github.com/mrlokans/bookhub/internal/logger"
)

// ContextKeyController holds the request's client controller.
const ContextKeyController = "controller"

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"` // machine-readable error code
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	logger.For(c.Request.Context()).WithError(err).Errorf("internal error (%s)", context)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondDispatchError maps controller errors onto responses.
func respondDispatchError(c *gin.Context, err error, action controller.Action) {
	switch {
	case errors.Is(err, controller.ErrUnknownAction):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown action " + string(action), Code: "unknown_action"})
	case errors.Is(err, catalog.ErrBookNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "book not found", Code: "book_not_found"})
	case errors.Is(err, controller.ErrClosed):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "client state was reset, retry the request", Code: "client_reset"})
	default:
		respondInternalError(c, err, string(action))
	}
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message, Data: data})
}

// currentController returns the controller set by the client middleware.
func currentController(c *gin.Context) *controller.Controller {
	return c.MustGet(ContextKeyController).(*controller.Controller)
}
