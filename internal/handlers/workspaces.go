package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/quillchat/quill/internal/services"
	appErrors "github.com/quillchat/quill/pkg/errors"
	"github.com/quillchat/quill/pkg/response"
)

// WorkspaceHandler exposes workspace CRUD and the workspace invite flow.
type WorkspaceHandler struct {
	workspaces    *services.WorkspaceService
	organizations *services.OrganizationService
	invites       *services.InviteService
}

func NewWorkspaceHandler(
	workspaces *services.WorkspaceService,
	organizations *services.OrganizationService,
	invites *services.InviteService,
) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaces:    workspaces,
		organizations: organizations,
		invites:       invites,
	}
}

type createWorkspaceRequest struct {
	Name string `json:"name" validate:"required,max=128"`
}

type createInviteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type decideInviteRequest struct {
	InviteID string `json:"inviteId" validate:"required"`
}

// POST /api/workspace
func (h *WorkspaceHandler) Create(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req createWorkspaceRequest
	if !bindAndValidate(c, &req) {
		return
	}

	ctx := requestContext(c)

	input := services.CreateWorkspaceInput{Name: req.Name, OwnerID: userID}
	if h.organizations != nil {
		if org, err := h.organizations.GetForOwner(ctx, userID); err == nil {
			input.OrganizationID = org.ID
		}
	}

	workspace, err := h.workspaces.Create(ctx, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"workspace": workspace})
}

// GET /api/workspace
func (h *WorkspaceHandler) List(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	workspaces, err := h.workspaces.ListForUser(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"workspaces": workspaces})
}

// GET /api/workspace/:id/members
func (h *WorkspaceHandler) Members(c *gin.Context) {
	userID := currentUserID(c)
	workspaceID := strings.TrimSpace(c.Param("id"))
	if workspaceID == "" {
		response.Error(c, appErrors.NewBadRequest("workspace id is required"))
		return
	}

	ctx := requestContext(c)
	if _, err := h.workspaces.RequireMember(ctx, workspaceID, userID); err != nil {
		response.Error(c, err)
		return
	}

	members, err := h.workspaces.ListMembers(ctx, workspaceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"members": members})
}

// POST /api/workspace/:id/invite
func (h *WorkspaceHandler) Invite(c *gin.Context) {
	userID := currentUserID(c)
	workspaceID := strings.TrimSpace(c.Param("id"))
	if workspaceID == "" {
		response.Error(c, appErrors.NewBadRequest("workspace id is required"))
		return
	}

	var req createInviteRequest
	if !bindAndValidate(c, &req) {
		return
	}

	invite, err := h.invites.CreateWorkspaceInvite(requestContext(c), services.CreateWorkspaceInviteInput{
		WorkspaceID:  workspaceID,
		InviterID:    userID,
		InviteeEmail: req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invite": invite})
}

// GET /api/workspace/:id/invites
func (h *WorkspaceHandler) ListInvites(c *gin.Context) {
	userID := currentUserID(c)
	workspaceID := strings.TrimSpace(c.Param("id"))
	if workspaceID == "" {
		response.Error(c, appErrors.NewBadRequest("workspace id is required"))
		return
	}

	invites, err := h.invites.ListWorkspaceInvites(requestContext(c), workspaceID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invites": invites})
}

// PATCH /api/workspace/:id/invite/accept
func (h *WorkspaceHandler) AcceptInviteByID(c *gin.Context) {
	userID := currentUserID(c)
	email := currentUserEmail(c)
	workspaceID := strings.TrimSpace(c.Param("id"))
	if workspaceID == "" {
		response.Error(c, appErrors.NewBadRequest("workspace id is required"))
		return
	}

	var req decideInviteRequest
	if !bindAndValidate(c, &req) {
		return
	}

	invite, err := h.invites.AcceptWorkspaceInviteByID(requestContext(c), workspaceID, req.InviteID, userID, email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invite": invite})
}

// POST /api/workspace/invite/accept?token=
func (h *WorkspaceHandler) AcceptInviteByToken(c *gin.Context) {
	userID := currentUserID(c)
	email := currentUserEmail(c)

	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		response.Error(c, appErrors.NewBadRequest("invite token is required"))
		return
	}

	invite, err := h.invites.AcceptWorkspaceInvite(requestContext(c), services.InviteDecisionInput{
		Token:  token,
		UserID: userID,
		Email:  email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invite": invite})
}

// POST /api/workspace/invite/reject?token=
//
// Token-bearing rejection works without a session so the emailed link can
// be declined before signing in.
func (h *WorkspaceHandler) RejectInviteByToken(c *gin.Context) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		response.Error(c, appErrors.NewBadRequest("invite token is required"))
		return
	}

	invite, err := h.invites.RejectWorkspaceInvite(requestContext(c), token)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invite": invite})
}

// GET /api/workspace/invites
func (h *WorkspaceHandler) PendingInvites(c *gin.Context) {
	email := currentUserEmail(c)
	if email == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	pending, err := h.invites.ListPendingForEmail(requestContext(c), email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invites": pending.Workspace})
}
