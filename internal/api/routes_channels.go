package api

import (
	"github.com/gin-gonic/gin"

	"github.com/quillchat/quill/internal/handlers"
)

type channelRouteDeps struct {
	ChannelHandler *handlers.ChannelHandler
}

func registerChannelRoutes(engine *gin.Engine, api *gin.RouterGroup, deps channelRouteDeps) {
	engine.POST("/api/channel/invite/reject", deps.ChannelHandler.RejectInviteByToken)

	channel := api.Group("/channel")
	{
		channel.POST("", deps.ChannelHandler.Create)
		channel.GET("", deps.ChannelHandler.List)
		channel.GET("/invites", deps.ChannelHandler.PendingInvites)
		channel.POST("/invite/accept", deps.ChannelHandler.AcceptInviteByToken)
		channel.GET("/:id/members", deps.ChannelHandler.Members)
		channel.POST("/:id/invites", deps.ChannelHandler.Invite)
		channel.GET("/:id/invites", deps.ChannelHandler.ListInvites)
	}
}
