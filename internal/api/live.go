package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type LiveHub interface {
	ServeWS(w http.ResponseWriter, r *http.Request, topic string)
}

type LiveHandler struct {
	hub LiveHub
}

func NewLiveHandler(hub LiveHub) *LiveHandler {
	return &LiveHandler{hub: hub}
}

// Stream handles GET /api/v1/live?topic=video:<id>
//
// Upgrades to a websocket that receives domain events. Without a topic the
// client receives every event.
func (h *LiveHandler) Stream(c *gin.Context) {
	h.hub.ServeWS(c.Writer, c.Request, c.Query("topic"))
}
