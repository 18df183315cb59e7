package api

import (
	"github.com/gin-gonic/gin"

	"github.com/quillchat/quill/internal/handlers"
)

type realtimeRouteDeps struct {
	RealtimeHandler *handlers.RealtimeHandler
}

// The websocket entry point authenticates from the session cookie or a token
// query parameter, so it sits outside the cookie middleware chain.
func registerRealtimeRoutes(engine *gin.Engine, deps realtimeRouteDeps) {
	engine.GET("/api/ws", deps.RealtimeHandler.Stream)
}
