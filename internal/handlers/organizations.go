package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quillchat/quill/internal/services"
	appErrors "github.com/quillchat/quill/pkg/errors"
	"github.com/quillchat/quill/pkg/response"
)

// OrganizationHandler serves the caller's auto-provisioned organization.
type OrganizationHandler struct {
	organizations *services.OrganizationService
}

func NewOrganizationHandler(organizations *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{organizations: organizations}
}

// GET /api/organization
func (h *OrganizationHandler) Get(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	org, err := h.organizations.GetForOwner(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"organization": org})
}
