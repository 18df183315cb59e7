package api

import (
	"github.com/gin-gonic/gin"

	"github.com/quillchat/quill/internal/handlers"
)

type messageRouteDeps struct {
	MessageHandler *handlers.MessageHandler
}

func registerMessageRoutes(api *gin.RouterGroup, deps messageRouteDeps) {
	message := api.Group("/message")
	{
		message.GET("/:channelId", deps.MessageHandler.List)
		message.POST("/:channelId", deps.MessageHandler.Post)
	}
}
