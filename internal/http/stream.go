package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookhub/internal/logger"
)

// streamBuffer is how many grid events a slow stream may lag behind.
const streamBuffer = 64

type StreamController struct{}

func NewStreamController() *StreamController {
	return &StreamController{}
}

// Grid streams the client's reveal events as server-sent events named
// reset, card and done. The stream ends when the client goes away or its
// controller is closed.
// GET /api/grid/stream
func (sc *StreamController) Grid(c *gin.Context) {
	ctrl := currentController(c)
	events, cancel := ctrl.Subscribe(streamBuffer)
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.SSEvent("ready", gin.H{"client_id": ctrl.ClientID()})
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			logger.For(ctx).Debug("grid stream closed by client")
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			c.SSEvent(string(ev.Kind), ev)
			c.Writer.Flush()
		}
	}
}
