package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/quillchat/quill/internal/models"
	"github.com/quillchat/quill/internal/services"
	appErrors "github.com/quillchat/quill/pkg/errors"
	"github.com/quillchat/quill/pkg/response"
)

// ChannelHandler exposes channel CRUD and the channel invite flow.
type ChannelHandler struct {
	channels   *services.ChannelService
	workspaces *services.WorkspaceService
	invites    *services.InviteService
}

func NewChannelHandler(
	channels *services.ChannelService,
	workspaces *services.WorkspaceService,
	invites *services.InviteService,
) *ChannelHandler {
	return &ChannelHandler{
		channels:   channels,
		workspaces: workspaces,
		invites:    invites,
	}
}

type createChannelRequest struct {
	Name        string `json:"name" validate:"required,max=128"`
	WorkspaceID string `json:"workspaceId" validate:"required"`
}

// channelListItem pairs a channel with the caller's pending invite, if any,
// so the client can render the accept prompt inline.
type channelListItem struct {
	models.Channel
	PendingInvite *models.ChannelInvite `json:"pending_invite,omitempty"`
}

// POST /api/channel
func (h *ChannelHandler) Create(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req createChannelRequest
	if !bindAndValidate(c, &req) {
		return
	}

	channel, err := h.channels.Create(requestContext(c), services.CreateChannelInput{
		Name:        req.Name,
		WorkspaceID: req.WorkspaceID,
		CreatorID:   userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"channel": channel})
}

// GET /api/channel?workspaceId=
func (h *ChannelHandler) List(c *gin.Context) {
	userID := currentUserID(c)
	email := currentUserEmail(c)

	workspaceID := strings.TrimSpace(c.Query("workspaceId"))
	if workspaceID == "" {
		response.Error(c, appErrors.NewBadRequest("workspaceId query parameter is required"))
		return
	}

	ctx := requestContext(c)
	channels, err := h.channels.ListForUser(ctx, workspaceID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	pendingByChannel := make(map[string]*models.ChannelInvite)
	if email != "" {
		if pending, err := h.invites.ListPendingForEmail(ctx, email); err == nil {
			for i := range pending.Channel {
				invite := pending.Channel[i]
				pendingByChannel[invite.ChannelID] = &pending.Channel[i]
			}
		}
	}

	items := make([]channelListItem, 0, len(channels))
	for i := range channels {
		items = append(items, channelListItem{
			Channel:       channels[i],
			PendingInvite: pendingByChannel[channels[i].ID],
		})
	}

	response.Success(c, http.StatusOK, gin.H{"channels": items})
}

// GET /api/channel/:id/members
func (h *ChannelHandler) Members(c *gin.Context) {
	userID := currentUserID(c)
	channelID := strings.TrimSpace(c.Param("id"))
	if channelID == "" {
		response.Error(c, appErrors.NewBadRequest("channel id is required"))
		return
	}

	ctx := requestContext(c)
	if err := h.requireChannelAccess(c, channelID, userID); err != nil {
		response.Error(c, err)
		return
	}

	members, err := h.channels.ListMembers(ctx, channelID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"members": members})
}

// POST /api/channel/:id/invites
func (h *ChannelHandler) Invite(c *gin.Context) {
	userID := currentUserID(c)
	channelID := strings.TrimSpace(c.Param("id"))
	if channelID == "" {
		response.Error(c, appErrors.NewBadRequest("channel id is required"))
		return
	}

	var req createInviteRequest
	if !bindAndValidate(c, &req) {
		return
	}

	invite, err := h.invites.CreateChannelInvite(requestContext(c), services.CreateChannelInviteInput{
		ChannelID:    channelID,
		InviterID:    userID,
		InviteeEmail: req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invite": invite})
}

// GET /api/channel/:id/invites
func (h *ChannelHandler) ListInvites(c *gin.Context) {
	userID := currentUserID(c)
	channelID := strings.TrimSpace(c.Param("id"))
	if channelID == "" {
		response.Error(c, appErrors.NewBadRequest("channel id is required"))
		return
	}

	invites, err := h.invites.ListChannelInvites(requestContext(c), channelID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invites": invites})
}

// GET /api/channel/invites
func (h *ChannelHandler) PendingInvites(c *gin.Context) {
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

	response.Success(c, http.StatusOK, gin.H{"invites": pending.Channel})
}

// POST /api/channel/invite/accept?token=
func (h *ChannelHandler) AcceptInviteByToken(c *gin.Context) {
	userID := currentUserID(c)
	email := currentUserEmail(c)

	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		response.Error(c, appErrors.NewBadRequest("invite token is required"))
		return
	}

	ctx := requestContext(c)
	invite, err := h.invites.AcceptChannelInvite(ctx, services.InviteDecisionInput{
		Token:  token,
		UserID: userID,
		Email:  email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	channel, err := h.channels.GetByID(ctx, invite.ChannelID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"invite": invite,
		"channel": gin.H{
			"id":           channel.ID,
			"name":         channel.Name,
			"workspace_id": channel.WorkspaceID,
		},
	})
}

// POST /api/channel/invite/reject?token=
func (h *ChannelHandler) RejectInviteByToken(c *gin.Context) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		response.Error(c, appErrors.NewBadRequest("invite token is required"))
		return
	}

	invite, err := h.invites.RejectChannelInvite(requestContext(c), token)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invite": invite})
}

// requireChannelAccess admits workspace members and channel members alike.
func (h *ChannelHandler) requireChannelAccess(c *gin.Context, channelID, userID string) error {
	ctx := requestContext(c)

	channel, err := h.channels.GetByID(ctx, channelID)
	if err != nil {
		return err
	}

	if ok, err := h.workspaces.IsMember(ctx, channel.WorkspaceID, userID); err != nil {
		return err
	} else if ok {
		return nil
	}

	if ok, err := h.channels.IsMember(ctx, channelID, userID); err != nil {
		return err
	} else if ok {
		return nil
	}

	return services.ErrNotChannelMember
}
