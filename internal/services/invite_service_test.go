package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quillchat/quill/internal/models"
	"github.com/quillchat/quill/internal/realtime"
)

func TestWorkspaceInviteLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	inviter := env.mustRegister(t, "inviter@example.com", "Ivy")
	invitee := env.mustRegister(t, "invitee@example.com", "Iris")
	workspace := env.mustCreateWorkspace(t, "Engineering", inviter.ID)

	invite, err := env.invites.CreateWorkspaceInvite(ctx, CreateWorkspaceInviteInput{
		WorkspaceID:  workspace.ID,
		InviterID:    inviter.ID,
		InviteeEmail: "Invitee@Example.com",
	})
	require.NoError(t, err)
	require.Equal(t, models.InviteStatusPending, invite.Status)
	require.Equal(t, "invitee@example.com", invite.InviteeEmail)
	require.NotEmpty(t, invite.Token)

	// The invitee was notified on their private stream, and the inviter got
	// the sent confirmation on theirs.
	notifications := env.broadcaster.userMessages(invitee.ID)
	require.NotEmpty(t, notifications)
	require.Equal(t, realtime.EventWorkspaceInvite, notifications[0].Event)
	require.Equal(t, realtime.UserStream(invitee.ID), notifications[0].Stream)

	sent := env.broadcaster.userMessages(inviter.ID)
	require.NotEmpty(t, sent)
	require.Equal(t, realtime.EventInviteSent, sent[0].Event)
	require.Equal(t, realtime.UserStream(inviter.ID), sent[0].Stream)

	accepted, err := env.invites.AcceptWorkspaceInvite(ctx, InviteDecisionInput{
		Token:  invite.Token,
		UserID: invitee.ID,
		Email:  invitee.Email,
	})
	require.NoError(t, err)
	require.Equal(t, models.InviteStatusAccepted, accepted.Status)

	isMember, err := env.workspaces.IsMember(ctx, workspace.ID, invitee.ID)
	require.NoError(t, err)
	require.True(t, isMember)
}

func TestWorkspaceInviteRequiresExistingAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	inviter := env.mustRegister(t, "inviter@example.com", "Ivy")
	workspace := env.mustCreateWorkspace(t, "Engineering", inviter.ID)

	_, err := env.invites.CreateWorkspaceInvite(ctx, CreateWorkspaceInviteInput{
		WorkspaceID:  workspace.ID,
		InviterID:    inviter.ID,
		InviteeEmail: "stranger@example.com",
	})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestWorkspaceInviteRejectsExistingMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	inviter := env.mustRegister(t, "inviter@example.com", "Ivy")
	workspace := env.mustCreateWorkspace(t, "Engineering", inviter.ID)

	_, err := env.invites.CreateWorkspaceInvite(ctx, CreateWorkspaceInviteInput{
		WorkspaceID:  workspace.ID,
		InviterID:    inviter.ID,
		InviteeEmail: inviter.Email,
	})
	require.ErrorIs(t, err, ErrInviteAlreadyMember)
}

func TestWorkspaceInviteDeduplicatesPending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	inviter := env.mustRegister(t, "inviter@example.com", "Ivy")
	env.mustRegister(t, "invitee@example.com", "Iris")
	workspace := env.mustCreateWorkspace(t, "Engineering", inviter.ID)

	input := CreateWorkspaceInviteInput{
		WorkspaceID:  workspace.ID,
		InviterID:    inviter.ID,
		InviteeEmail: "invitee@example.com",
	}

	_, err := env.invites.CreateWorkspaceInvite(ctx, input)
	require.NoError(t, err)

	_, err = env.invites.CreateWorkspaceInvite(ctx, input)
	require.ErrorIs(t, err, ErrInviteDuplicate)
}

func TestWorkspaceInviteResendAfterRejection(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	inviter := env.mustRegister(t, "inviter@example.com", "Ivy")
	env.mustRegister(t, "invitee@example.com", "Iris")
	workspace := env.mustCreateWorkspace(t, "Engineering", inviter.ID)

	input := CreateWorkspaceInviteInput{
		WorkspaceID:  workspace.ID,
		InviterID:    inviter.ID,
		InviteeEmail: "invitee@example.com",
	}

	invite, err := env.invites.CreateWorkspaceInvite(ctx, input)
	require.NoError(t, err)

	rejected, err := env.invites.RejectWorkspaceInvite(ctx, invite.Token)
	require.NoError(t, err)
	require.Equal(t, models.InviteStatusRejected, rejected.Status)

	// Settled invites stay behind as history; a fresh one may be issued.
	_, err = env.invites.CreateWorkspaceInvite(ctx, input)
	require.NoError(t, err)

	var count int64
	require.NoError(t, env.db.Model(&models.WorkspaceInvite{}).
		Where("workspace_id = ?", workspace.ID).
		Count(&count).Error)
	require.EqualValues(t, 2, count)
}

func TestWorkspaceInviteAcceptGuards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	inviter := env.mustRegister(t, "inviter@example.com", "Ivy")
	invitee := env.mustRegister(t, "invitee@example.com", "Iris")
	interloper := env.mustRegister(t, "interloper@example.com", "Ian")
	workspace := env.mustCreateWorkspace(t, "Engineering", inviter.ID)

	invite, err := env.invites.CreateWorkspaceInvite(ctx, CreateWorkspaceInviteInput{
		WorkspaceID:  workspace.ID,
		InviterID:    inviter.ID,
		InviteeEmail: invitee.Email,
	})
	require.NoError(t, err)

	// Wrong account cannot accept someone else's invite.
	_, err = env.invites.AcceptWorkspaceInvite(ctx, InviteDecisionInput{
		Token:  invite.Token,
		UserID: interloper.ID,
		Email:  interloper.Email,
	})
	require.ErrorIs(t, err, ErrInviteEmailMismatch)

	// Garbage tokens are rejected outright.
	_, err = env.invites.AcceptWorkspaceInvite(ctx, InviteDecisionInput{
		Token:  "garbage",
		UserID: invitee.ID,
		Email:  invitee.Email,
	})
	require.ErrorIs(t, err, ErrInviteTokenInvalid)

	// Accepting twice fails: the transition out of pending is one-way.
	_, err = env.invites.AcceptWorkspaceInvite(ctx, InviteDecisionInput{
		Token:  invite.Token,
		UserID: invitee.ID,
		Email:  invitee.Email,
	})
	require.NoError(t, err)

	_, err = env.invites.AcceptWorkspaceInvite(ctx, InviteDecisionInput{
		Token:  invite.Token,
		UserID: invitee.ID,
		Email:  invitee.Email,
	})
	require.ErrorIs(t, err, ErrInviteAlreadyProcessed)
}

func TestAcceptWorkspaceInviteByID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	inviter := env.mustRegister(t, "inviter@example.com", "Ivy")
	invitee := env.mustRegister(t, "invitee@example.com", "Iris")
	workspace := env.mustCreateWorkspace(t, "Engineering", inviter.ID)

	invite, err := env.invites.CreateWorkspaceInvite(ctx, CreateWorkspaceInviteInput{
		WorkspaceID:  workspace.ID,
		InviterID:    inviter.ID,
		InviteeEmail: invitee.Email,
	})
	require.NoError(t, err)

	accepted, err := env.invites.AcceptWorkspaceInviteByID(ctx, workspace.ID, invite.ID, invitee.ID, invitee.Email)
	require.NoError(t, err)
	require.Equal(t, models.InviteStatusAccepted, accepted.Status)

	isMember, err := env.workspaces.IsMember(ctx, workspace.ID, invitee.ID)
	require.NoError(t, err)
	require.True(t, isMember)

	_, err = env.invites.AcceptWorkspaceInviteByID(ctx, workspace.ID, "missing", invitee.ID, invitee.Email)
	require.ErrorIs(t, err, ErrInviteNotFound)
}

func TestChannelInviteLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	inviter := env.mustRegister(t, "inviter@example.com", "Ivy")
	invitee := env.mustRegister(t, "invitee@example.com", "Iris")
	workspace := env.mustCreateWorkspace(t, "Engineering", inviter.ID)
	channel := env.mustCreateChannel(t, "general", workspace.ID, inviter.ID)

	invite, err := env.invites.CreateChannelInvite(ctx, CreateChannelInviteInput{
		ChannelID:    channel.ID,
		InviterID:    inviter.ID,
		InviteeEmail: invitee.Email,
	})
	require.NoError(t, err)
	require.Equal(t, models.InviteStatusPending, invite.Status)

	// A pending placeholder appears on the roster, and the invitee gets
	// guest standing in the parent workspace immediately so the pending
	// channel is visible to them.
	members, err := env.channels.ListMembers(ctx, channel.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)

	pendingChannels, err := env.channels.ListForUser(ctx, workspace.ID, invitee.ID)
	require.NoError(t, err)
	require.Len(t, pendingChannels, 1)

	// The invitee sees the invite on their private stream while the inviter
	// gets the sent confirmation.
	notifications := env.broadcaster.userMessages(invitee.ID)
	require.NotEmpty(t, notifications)
	require.Equal(t, realtime.EventWorkspaceInvite, notifications[0].Event)

	sent := env.broadcaster.userMessages(inviter.ID)
	require.NotEmpty(t, sent)
	require.Equal(t, realtime.EventInviteSent, sent[0].Event)

	accepted, err := env.invites.AcceptChannelInvite(ctx, InviteDecisionInput{
		Token:  invite.Token,
		UserID: invitee.ID,
		Email:  invitee.Email,
	})
	require.NoError(t, err)
	require.Equal(t, models.InviteStatusAccepted, accepted.Status)

	isMember, err := env.channels.IsMember(ctx, channel.ID, invitee.ID)
	require.NoError(t, err)
	require.True(t, isMember)

	// Channel guests get guest standing in the parent workspace.
	var member models.WorkspaceMember
	require.NoError(t, env.db.First(&member, "workspace_id = ? AND user_id = ?", workspace.ID, invitee.ID).Error)
	require.Equal(t, models.WorkspaceRoleGuest, member.Role)
}

func TestChannelInviteRejectionRemovesPlaceholder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	inviter := env.mustRegister(t, "inviter@example.com", "Ivy")
	invitee := env.mustRegister(t, "invitee@example.com", "Iris")
	workspace := env.mustCreateWorkspace(t, "Engineering", inviter.ID)
	channel := env.mustCreateChannel(t, "general", workspace.ID, inviter.ID)

	invite, err := env.invites.CreateChannelInvite(ctx, CreateChannelInviteInput{
		ChannelID:    channel.ID,
		InviterID:    inviter.ID,
		InviteeEmail: invitee.Email,
	})
	require.NoError(t, err)

	rejected, err := env.invites.RejectChannelInvite(ctx, invite.Token)
	require.NoError(t, err)
	require.Equal(t, models.InviteStatusRejected, rejected.Status)

	members, err := env.channels.ListMembers(ctx, channel.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, inviter.ID, members[0].UserID)

	// Rejecting again is a 404: the invite is no longer pending.
	_, err = env.invites.RejectChannelInvite(ctx, invite.Token)
	require.ErrorIs(t, err, ErrInviteNotPending)
}

func TestListPendingForEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	inviter := env.mustRegister(t, "inviter@example.com", "Ivy")
	invitee := env.mustRegister(t, "invitee@example.com", "Iris")
	workspace := env.mustCreateWorkspace(t, "Engineering", inviter.ID)
	channel := env.mustCreateChannel(t, "general", workspace.ID, inviter.ID)

	_, err := env.invites.CreateWorkspaceInvite(ctx, CreateWorkspaceInviteInput{
		WorkspaceID:  workspace.ID,
		InviterID:    inviter.ID,
		InviteeEmail: invitee.Email,
	})
	require.NoError(t, err)

	_, err = env.invites.CreateChannelInvite(ctx, CreateChannelInviteInput{
		ChannelID:    channel.ID,
		InviterID:    inviter.ID,
		InviteeEmail: invitee.Email,
	})
	require.NoError(t, err)

	pending, err := env.invites.ListPendingForEmail(ctx, invitee.Email)
	require.NoError(t, err)
	require.Len(t, pending.Workspace, 1)
	require.Len(t, pending.Channel, 1)
	require.NotNil(t, pending.Workspace[0].Workspace)
	require.NotNil(t, pending.Channel[0].Channel)

	empty, err := env.invites.ListPendingForEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	require.Empty(t, empty.Workspace)
	require.Empty(t, empty.Channel)
}

func TestListWorkspaceInvitesRequiresMembership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	inviter := env.mustRegister(t, "inviter@example.com", "Ivy")
	outsider := env.mustRegister(t, "outsider@example.com", "Otto")
	workspace := env.mustCreateWorkspace(t, "Engineering", inviter.ID)

	_, err := env.invites.ListWorkspaceInvites(ctx, workspace.ID, outsider.ID)
	require.ErrorIs(t, err, ErrNotWorkspaceMember)

	invites, err := env.invites.ListWorkspaceInvites(ctx, workspace.ID, inviter.ID)
	require.NoError(t, err)
	require.Empty(t, invites)
}
