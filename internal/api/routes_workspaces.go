package api

import (
	"github.com/gin-gonic/gin"

	"github.com/quillchat/quill/internal/handlers"
)

type workspaceRouteDeps struct {
	WorkspaceHandler *handlers.WorkspaceHandler
}

func registerWorkspaceRoutes(engine *gin.Engine, api *gin.RouterGroup, deps workspaceRouteDeps) {
	// Token-bearing rejection is reachable without a session so the emailed
	// link can be declined before signing in.
	engine.POST("/api/workspace/invite/reject", deps.WorkspaceHandler.RejectInviteByToken)

	workspace := api.Group("/workspace")
	{
		workspace.POST("", deps.WorkspaceHandler.Create)
		workspace.GET("", deps.WorkspaceHandler.List)
		workspace.GET("/invites", deps.WorkspaceHandler.PendingInvites)
		workspace.POST("/invite/accept", deps.WorkspaceHandler.AcceptInviteByToken)
		workspace.GET("/:id/members", deps.WorkspaceHandler.Members)
		workspace.POST("/:id/invite", deps.WorkspaceHandler.Invite)
		workspace.GET("/:id/invites", deps.WorkspaceHandler.ListInvites)
		workspace.PATCH("/:id/invite/accept", deps.WorkspaceHandler.AcceptInviteByID)
	}
}
