package api

import (
	"github.com/gin-gonic/gin"

	"github.com/quillchat/quill/internal/handlers"
)

type authRouteDeps struct {
	AuthHandler *handlers.AuthHandler
}

func registerAuthRoutes(engine *gin.Engine, api *gin.RouterGroup, deps authRouteDeps) {
	auth := engine.Group("/api/auth")
	{
		auth.POST("/register", deps.AuthHandler.Register)
		auth.POST("/login", deps.AuthHandler.Login)
	}

	api.GET("/auth/me", deps.AuthHandler.Me)
	api.POST("/auth/logout", deps.AuthHandler.Logout)
}
