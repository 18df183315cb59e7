package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quillchat/quill/internal/models"
)

func TestCreateChannelGeneratesSlugAndEnrolsCreator(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.mustRegister(t, "owner@example.com", "Olive")
	workspace := env.mustCreateWorkspace(t, "Engineering", owner.ID)

	channel := env.mustCreateChannel(t, "General Updates", workspace.ID, owner.ID)
	require.True(t, strings.HasPrefix(channel.Slug, "general-updates-"), "unexpected slug %q", channel.Slug)

	isMember, err := env.channels.IsMember(ctx, channel.ID, owner.ID)
	require.NoError(t, err)
	require.True(t, isMember)
}

func TestCreateChannelRequiresWorkspaceMembership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.mustRegister(t, "owner@example.com", "Olive")
	outsider := env.mustRegister(t, "outsider@example.com", "Otto")
	workspace := env.mustCreateWorkspace(t, "Engineering", owner.ID)

	_, err := env.channels.Create(ctx, CreateChannelInput{
		Name:        "general",
		WorkspaceID: workspace.ID,
		CreatorID:   outsider.ID,
	})
	require.ErrorIs(t, err, ErrNotWorkspaceMember)
}

func TestListChannelsForUserIncludesPendingPlaceholders(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.mustRegister(t, "owner@example.com", "Olive")
	member := env.mustRegister(t, "member@example.com", "Mia")
	workspace := env.mustCreateWorkspace(t, "Engineering", owner.ID)
	require.NoError(t, env.workspaces.EnsureMember(ctx, nil, workspace.ID, member.ID, models.WorkspaceRoleMember))

	general := env.mustCreateChannel(t, "general", workspace.ID, owner.ID)
	env.mustCreateChannel(t, "private", workspace.ID, owner.ID)

	// Pending placeholder from an unanswered invite still shows the channel.
	placeholder := &models.ChannelMember{
		UserID:    member.ID,
		ChannelID: general.ID,
		Status:    models.ChannelMemberStatusPending,
	}
	require.NoError(t, env.db.Create(placeholder).Error)

	channels, err := env.channels.ListForUser(ctx, workspace.ID, member.ID)
	require.NoError(t, err)
	require.Len(t, channels, 1)
	require.Equal(t, general.ID, channels[0].ID)

	// Pending placeholders do not grant settled membership.
	isMember, err := env.channels.IsMember(ctx, general.ID, member.ID)
	require.NoError(t, err)
	require.False(t, isMember)
}

func TestEnsureChannelMemberPromotesPendingRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.mustRegister(t, "owner@example.com", "Olive")
	invitee := env.mustRegister(t, "invitee@example.com", "Iris")
	workspace := env.mustCreateWorkspace(t, "Engineering", owner.ID)
	channel := env.mustCreateChannel(t, "general", workspace.ID, owner.ID)

	placeholder := &models.ChannelMember{
		UserID:    invitee.ID,
		ChannelID: channel.ID,
		Status:    models.ChannelMemberStatusPending,
	}
	require.NoError(t, env.db.Create(placeholder).Error)

	require.NoError(t, env.channels.EnsureMember(ctx, nil, channel.ID, invitee.ID))

	isMember, err := env.channels.IsMember(ctx, channel.ID, invitee.ID)
	require.NoError(t, err)
	require.True(t, isMember)

	// No duplicate row was created.
	var count int64
	require.NoError(t, env.db.Model(&models.ChannelMember{}).
		Where("channel_id = ? AND user_id = ?", channel.ID, invitee.ID).
		Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestGetChannelByIDNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.channels.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ErrChannelNotFound)
}
