package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/quillchat/quill/internal/models"
	apperrors "github.com/quillchat/quill/pkg/errors"
)

var (
	// ErrChannelNotFound indicates the requested channel does not exist.
	ErrChannelNotFound = apperrors.New("CHANNEL_NOT_FOUND", "Channel not found", http.StatusNotFound)
	// ErrNotChannelMember rejects callers acting on a channel they do not belong to.
	ErrNotChannelMember = apperrors.New("CHANNEL_FORBIDDEN", "You are not a member of this channel", http.StatusForbidden)
)

// CreateChannelInput describes the fields accepted when creating a channel.
type CreateChannelInput struct {
	Name        string
	WorkspaceID string
	CreatorID   string
}

// ChannelService manages channels and their membership rows.
type ChannelService struct {
	db           *gorm.DB
	workspaces   *WorkspaceService
	auditService *AuditService
}

// NewChannelService constructs a ChannelService instance.
func NewChannelService(db *gorm.DB, workspaces *WorkspaceService, auditService *AuditService) (*ChannelService, error) {
	if db == nil {
		return nil, errors.New("channel service: db is required")
	}
	if workspaces == nil {
		return nil, errors.New("channel service: workspace service is required")
	}
	return &ChannelService{
		db:           db,
		workspaces:   workspaces,
		auditService: auditService,
	}, nil
}

// Create provisions a channel with a generated slug and enrols the creator.
// The creator must belong to the parent workspace.
func (s *ChannelService) Create(ctx context.Context, input CreateChannelInput) (*models.Channel, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewBadRequest("channel name is required")
	}

	if _, err := s.workspaces.RequireMember(ctx, input.WorkspaceID, input.CreatorID); err != nil {
		return nil, err
	}

	channel := &models.Channel{
		Name:        name,
		Slug:        fmt.Sprintf("%s-%s", slugify(name), randomSuffix(6)),
		WorkspaceID: input.WorkspaceID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(channel).Error; err != nil {
			return err
		}

		member := &models.ChannelMember{
			UserID:    input.CreatorID,
			ChannelID: channel.ID,
			Status:    models.ChannelMemberStatusMember,
		}
		return tx.Create(member).Error
	})
	if err != nil {
		return nil, fmt.Errorf("channel service: create channel: %w", err)
	}

	recordAudit(s.auditService, ctx, AuditEntry{
		UserID:   &input.CreatorID,
		Action:   "channel.create",
		Resource: channel.ID,
		Result:   "success",
		Metadata: map[string]any{"name": channel.Name, "workspace_id": channel.WorkspaceID},
	})

	return channel, nil
}

// GetByID loads a channel by identifier.
func (s *ChannelService) GetByID(ctx context.Context, id string) (*models.Channel, error) {
	ctx = ensureContext(ctx)

	var channel models.Channel
	err := s.db.WithContext(ctx).First(&channel, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChannelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("channel service: get channel: %w", err)
	}
	return &channel, nil
}

// ListForUser returns channels in the workspace where the user holds a
// membership row, whether settled or still pending an invite decision.
func (s *ChannelService) ListForUser(ctx context.Context, workspaceID, userID string) ([]models.Channel, error) {
	ctx = ensureContext(ctx)

	if _, err := s.workspaces.RequireMember(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	var channels []models.Channel
	err := s.db.WithContext(ctx).
		Joins("JOIN channel_members ON channel_members.channel_id = channels.id").
		Where("channels.workspace_id = ? AND channel_members.user_id = ?", workspaceID, userID).
		Order("channels.created_at ASC").
		Find(&channels).Error
	if err != nil {
		return nil, fmt.Errorf("channel service: list channels: %w", err)
	}
	return channels, nil
}

// ListMembers returns channel membership rows including user details.
func (s *ChannelService) ListMembers(ctx context.Context, channelID string) ([]models.ChannelMember, error) {
	ctx = ensureContext(ctx)

	if _, err := s.GetByID(ctx, channelID); err != nil {
		return nil, err
	}

	var members []models.ChannelMember
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("channel_id = ?", channelID).
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("channel service: list members: %w", err)
	}
	return members, nil
}

// IsMember reports whether the user holds settled membership in the channel.
// Pending invite placeholders do not count.
func (s *ChannelService) IsMember(ctx context.Context, channelID, userID string) (bool, error) {
	ctx = ensureContext(ctx)

	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.ChannelMember{}).
		Where("channel_id = ? AND user_id = ? AND status = ?", channelID, userID, models.ChannelMemberStatusMember).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("channel service: check membership: %w", err)
	}
	return count > 0, nil
}

// HasMembershipRow reports whether any membership row exists for the user,
// pending placeholders included. Pending invitees may watch the channel
// stream before accepting.
func (s *ChannelService) HasMembershipRow(ctx context.Context, channelID, userID string) (bool, error) {
	ctx = ensureContext(ctx)

	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.ChannelMember{}).
		Where("channel_id = ? AND user_id = ?", channelID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("channel service: check membership: %w", err)
	}
	return count > 0, nil
}

// EnsureMember enrols the user with settled status, promoting a pending
// placeholder row when one exists.
func (s *ChannelService) EnsureMember(ctx context.Context, tx *gorm.DB, channelID, userID string) error {
	ctx = ensureContext(ctx)
	if tx == nil {
		tx = s.db
	}

	var member models.ChannelMember
	err := tx.WithContext(ctx).
		First(&member, "channel_id = ? AND user_id = ?", channelID, userID).Error
	if err == nil {
		if member.Status == models.ChannelMemberStatusMember {
			return nil
		}
		return tx.WithContext(ctx).
			Model(&models.ChannelMember{}).
			Where("id = ?", member.ID).
			Update("status", models.ChannelMemberStatusMember).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("channel service: check membership: %w", err)
	}

	created := &models.ChannelMember{
		UserID:    userID,
		ChannelID: channelID,
		Status:    models.ChannelMemberStatusMember,
	}
	if err := tx.WithContext(ctx).Create(created).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil
		}
		return fmt.Errorf("channel service: enrol member: %w", err)
	}
	return nil
}
