package api

import (
	"github.com/gin-gonic/gin"

	"github.com/quillchat/quill/internal/handlers"
)

type userRouteDeps struct {
	UserHandler         *handlers.UserHandler
	OrganizationHandler *handlers.OrganizationHandler
}

func registerUserRoutes(api *gin.RouterGroup, deps userRouteDeps) {
	api.GET("/users/search", deps.UserHandler.Search)
	api.GET("/organization", deps.OrganizationHandler.Get)
}
