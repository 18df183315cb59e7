package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/quillchat/quill/internal/models"
	"github.com/quillchat/quill/internal/realtime"
	apperrors "github.com/quillchat/quill/pkg/errors"
	"github.com/quillchat/quill/pkg/logger"
	"github.com/quillchat/quill/pkg/metrics"
)

// MaxMessageLength caps message content in runes.
const MaxMessageLength = 4000

// PostMessageInput describes a message submission.
type PostMessageInput struct {
	ChannelID string
	AuthorID  string
	Content   string
}

// ListMessagesOptions controls pagination for channel history.
type ListMessagesOptions struct {
	Limit  int
	Before string // message ID; returns history older than it
}

// MessageService persists channel messages and fans them out to subscribers.
type MessageService struct {
	db           *gorm.DB
	channels     *ChannelService
	broadcaster  realtime.Broadcaster
	auditService *AuditService
}

// NewMessageService constructs a MessageService instance.
func NewMessageService(db *gorm.DB, channels *ChannelService, broadcaster realtime.Broadcaster, auditService *AuditService) (*MessageService, error) {
	if db == nil {
		return nil, errors.New("message service: db is required")
	}
	if channels == nil {
		return nil, errors.New("message service: channel service is required")
	}
	return &MessageService{
		db:           db,
		channels:     channels,
		broadcaster:  broadcaster,
		auditService: auditService,
	}, nil
}

// Post validates membership, persists the message and broadcasts it on the
// channel stream. Authors holding an accepted channel invite that has not
// settled their membership yet are enrolled on first post.
func (s *MessageService) Post(ctx context.Context, input PostMessageInput) (*models.Message, error) {
	ctx = ensureContext(ctx)

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, apperrors.NewBadRequest("message content is required")
	}
	if utf8.RuneCountInString(content) > MaxMessageLength {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("message content exceeds %d characters", MaxMessageLength))
	}

	channel, err := s.channels.GetByID(ctx, input.ChannelID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.canPost(ctx, channel, input.AuthorID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrNotChannelMember
	}

	message := &models.Message{
		Content:   content,
		ChannelID: channel.ID,
		AuthorID:  input.AuthorID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.channels.EnsureMember(ctx, tx, channel.ID, input.AuthorID); err != nil {
			return err
		}
		return tx.Create(message).Error
	})
	if err != nil {
		return nil, fmt.Errorf("message service: post message: %w", err)
	}

	var author models.User
	if err := s.db.WithContext(ctx).First(&author, "id = ?", input.AuthorID).Error; err != nil {
		logger.WithModule("messages").Warn("load message author", zap.Error(err))
	} else {
		message.Author = &author
	}

	s.broadcast(channel.ID, message)
	metrics.MessagesPosted.Inc()

	return message, nil
}

// List returns the newest page of channel history in ascending creation
// order, so the last element is the most recent message. Before pages further
// into older history. The caller must hold settled membership.
func (s *MessageService) List(ctx context.Context, channelID, callerID string, opts ListMessagesOptions) ([]models.Message, error) {
	ctx = ensureContext(ctx)

	if _, err := s.channels.GetByID(ctx, channelID); err != nil {
		return nil, err
	}

	isMember, err := s.channels.IsMember(ctx, channelID, callerID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotChannelMember
	}

	limit := opts.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := s.db.WithContext(ctx).
		Preload("Author").
		Where("channel_id = ?", channelID)

	if before := strings.TrimSpace(opts.Before); before != "" {
		var pivot models.Message
		err := s.db.WithContext(ctx).First(&pivot, "id = ?", before).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("message service: load pivot: %w", err)
		}
		if err == nil {
			query = query.Where("created_at < ?", pivot.CreatedAt)
		}
	}

	// Select the newest rows first so the page always ends at the most
	// recent message, then restore ascending order for the client.
	var messages []models.Message
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("message service: list messages: %w", err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

// canPost allows settled members and invitees whose channel invite has been
// accepted without a membership row catching up yet.
func (s *MessageService) canPost(ctx context.Context, channel *models.Channel, authorID string) (bool, error) {
	isMember, err := s.channels.IsMember(ctx, channel.ID, authorID)
	if err != nil {
		return false, err
	}
	if isMember {
		return true, nil
	}

	var author models.User
	err = s.db.WithContext(ctx).First(&author, "id = ?", authorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("message service: load author: %w", err)
	}

	var count int64
	err = s.db.WithContext(ctx).
		Model(&models.ChannelInvite{}).
		Where("channel_id = ? AND invitee_email = ? AND status = ?",
			channel.ID, normaliseEmail(author.Email), models.InviteStatusAccepted).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("message service: check invites: %w", err)
	}
	return count > 0, nil
}

func (s *MessageService) broadcast(channelID string, message *models.Message) {
	if s.broadcaster == nil {
		return
	}

	payload := map[string]any{
		"id":         message.ID,
		"content":    message.Content,
		"channel_id": message.ChannelID,
		"created_at": message.CreatedAt,
	}
	if message.Author != nil {
		payload["user"] = message.Author.Summary()
	}

	s.broadcaster.BroadcastStream(realtime.ChannelStream(channelID), realtime.Message{
		Event: realtime.EventMessageSent,
		Data:  payload,
	})
}
