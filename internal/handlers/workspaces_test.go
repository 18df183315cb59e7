package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/quillchat/quill/internal/models"
	"github.com/quillchat/quill/internal/services"
)

func newWorkspaceHandler(env *handlerEnv) *WorkspaceHandler {
	return NewWorkspaceHandler(env.workspaces, env.organizations, env.invites)
}

func TestWorkspaceHandlerCreateLinksOrganization(t *testing.T) {
	env := newHandlerEnv(t)
	handler := newWorkspaceHandler(env)
	owner := env.mustRegister(t, "owner@example.com", "Olive")

	recorder := do(t, testRequest{
		method: http.MethodPost,
		path:   "/api/workspace",
		body:   map[string]string{"name": "Engineering"},
		user:   owner,
	}, handler.Create)

	require.Equal(t, http.StatusOK, recorder.Code)

	var created struct {
		Workspace models.Workspace `json:"workspace"`
	}
	decodeData(t, decodeResponse(t, recorder), &created)
	require.Equal(t, "Engineering", created.Workspace.Name)
	require.NotNil(t, created.Workspace.OrganizationID)
	require.Contains(t, created.Workspace.Color, "hsl(")
}

func TestWorkspaceHandlerListScopedToCaller(t *testing.T) {
	env := newHandlerEnv(t)
	handler := newWorkspaceHandler(env)
	owner := env.mustRegister(t, "owner@example.com", "Olive")
	other := env.mustRegister(t, "other@example.com", "Omar")
	env.mustCreateWorkspace(t, "Engineering", owner.ID)
	env.mustCreateWorkspace(t, "Design", other.ID)

	recorder := do(t, testRequest{
		method: http.MethodGet,
		path:   "/api/workspace",
		user:   owner,
	}, handler.List)

	require.Equal(t, http.StatusOK, recorder.Code)
	var listed struct {
		Workspaces []models.Workspace `json:"workspaces"`
	}
	decodeData(t, decodeResponse(t, recorder), &listed)
	require.Len(t, listed.Workspaces, 1)
	require.Equal(t, "Engineering", listed.Workspaces[0].Name)
	require.NotEmpty(t, listed.Workspaces[0].Members)
}

func TestWorkspaceHandlerMembersRequiresMembership(t *testing.T) {
	env := newHandlerEnv(t)
	handler := newWorkspaceHandler(env)
	owner := env.mustRegister(t, "owner@example.com", "Olive")
	outsider := env.mustRegister(t, "outsider@example.com", "Oscar")
	workspace := env.mustCreateWorkspace(t, "Engineering", owner.ID)

	recorder := do(t, testRequest{
		method: http.MethodGet,
		params: gin.Params{{Key: "id", Value: workspace.ID}},
		user:   outsider,
	}, handler.Members)
	require.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = do(t, testRequest{
		method: http.MethodGet,
		params: gin.Params{{Key: "id", Value: workspace.ID}},
		user:   owner,
	}, handler.Members)
	require.Equal(t, http.StatusOK, recorder.Code)

	var listed struct {
		Members []models.WorkspaceMember `json:"members"`
	}
	decodeData(t, decodeResponse(t, recorder), &listed)
	require.Len(t, listed.Members, 1)
	require.NotNil(t, listed.Members[0].User)
}

func TestWorkspaceHandlerInviteLifecycle(t *testing.T) {
	env := newHandlerEnv(t)
	handler := newWorkspaceHandler(env)
	owner := env.mustRegister(t, "owner@example.com", "Olive")
	invitee := env.mustRegister(t, "invitee@example.com", "Iris")
	workspace := env.mustCreateWorkspace(t, "Engineering", owner.ID)

	recorder := do(t, testRequest{
		method: http.MethodPost,
		params: gin.Params{{Key: "id", Value: workspace.ID}},
		body:   map[string]string{"email": invitee.Email},
		user:   owner,
	}, handler.Invite)
	require.Equal(t, http.StatusOK, recorder.Code)

	var created struct {
		Invite models.WorkspaceInvite `json:"invite"`
	}
	decodeData(t, decodeResponse(t, recorder), &created)
	require.Equal(t, models.InviteStatusPending, created.Invite.Status)

	// The invitee sees the pending invite.
	recorder = do(t, testRequest{
		method: http.MethodGet,
		user:   invitee,
	}, handler.PendingInvites)
	require.Equal(t, http.StatusOK, recorder.Code)
	var pending struct {
		Invites []models.WorkspaceInvite `json:"invites"`
	}
	decodeData(t, decodeResponse(t, recorder), &pending)
	require.Len(t, pending.Invites, 1)

	// Token-based accept.
	recorder = do(t, testRequest{
		method: http.MethodPost,
		query:  "token=" + created.Invite.Token,
		user:   invitee,
	}, handler.AcceptInviteByToken)
	require.Equal(t, http.StatusOK, recorder.Code)

	isMember, err := env.workspaces.IsMember(context.Background(), workspace.ID, invitee.ID)
	require.NoError(t, err)
	require.True(t, isMember)
}

func TestWorkspaceHandlerAcceptInviteByID(t *testing.T) {
	env := newHandlerEnv(t)
	handler := newWorkspaceHandler(env)
	owner := env.mustRegister(t, "owner@example.com", "Olive")
	invitee := env.mustRegister(t, "invitee@example.com", "Iris")
	workspace := env.mustCreateWorkspace(t, "Engineering", owner.ID)

	invite, err := env.invites.CreateWorkspaceInvite(context.Background(), services.CreateWorkspaceInviteInput{
		WorkspaceID:  workspace.ID,
		InviterID:    owner.ID,
		InviteeEmail: invitee.Email,
	})
	require.NoError(t, err)

	recorder := do(t, testRequest{
		method: http.MethodPatch,
		params: gin.Params{{Key: "id", Value: workspace.ID}},
		body:   map[string]string{"inviteId": invite.ID},
		user:   invitee,
	}, handler.AcceptInviteByID)
	require.Equal(t, http.StatusOK, recorder.Code)

	var accepted struct {
		Invite models.WorkspaceInvite `json:"invite"`
	}
	decodeData(t, decodeResponse(t, recorder), &accepted)
	require.Equal(t, models.InviteStatusAccepted, accepted.Invite.Status)

	// Terminal state: accepting again reports an already processed invite.
	recorder = do(t, testRequest{
		method: http.MethodPatch,
		params: gin.Params{{Key: "id", Value: workspace.ID}},
		body:   map[string]string{"inviteId": invite.ID},
		user:   invitee,
	}, handler.AcceptInviteByID)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestWorkspaceHandlerRejectInviteWithoutSession(t *testing.T) {
	env := newHandlerEnv(t)
	handler := newWorkspaceHandler(env)
	owner := env.mustRegister(t, "owner@example.com", "Olive")
	invitee := env.mustRegister(t, "invitee@example.com", "Iris")
	workspace := env.mustCreateWorkspace(t, "Engineering", owner.ID)

	invite, err := env.invites.CreateWorkspaceInvite(context.Background(), services.CreateWorkspaceInviteInput{
		WorkspaceID:  workspace.ID,
		InviterID:    owner.ID,
		InviteeEmail: invitee.Email,
	})
	require.NoError(t, err)

	// No user on the context: the emailed link works before signing in.
	recorder := do(t, testRequest{
		method: http.MethodPost,
		query:  "token=" + invite.Token,
	}, handler.RejectInviteByToken)
	require.Equal(t, http.StatusOK, recorder.Code)

	var rejected struct {
		Invite models.WorkspaceInvite `json:"invite"`
	}
	decodeData(t, decodeResponse(t, recorder), &rejected)
	require.Equal(t, models.InviteStatusRejected, rejected.Invite.Status)
}

func TestWorkspaceHandlerInviteRequiresEmailMatch(t *testing.T) {
	env := newHandlerEnv(t)
	handler := newWorkspaceHandler(env)
	owner := env.mustRegister(t, "owner@example.com", "Olive")
	invitee := env.mustRegister(t, "invitee@example.com", "Iris")
	interloper := env.mustRegister(t, "interloper@example.com", "Ivan")
	workspace := env.mustCreateWorkspace(t, "Engineering", owner.ID)

	invite, err := env.invites.CreateWorkspaceInvite(context.Background(), services.CreateWorkspaceInviteInput{
		WorkspaceID:  workspace.ID,
		InviterID:    owner.ID,
		InviteeEmail: invitee.Email,
	})
	require.NoError(t, err)

	recorder := do(t, testRequest{
		method: http.MethodPost,
		query:  "token=" + invite.Token,
		user:   interloper,
	}, handler.AcceptInviteByToken)
	require.Equal(t, http.StatusForbidden, recorder.Code)
}
