package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	iauth "github.com/quillchat/quill/internal/auth"
	"github.com/quillchat/quill/internal/models"
	"github.com/quillchat/quill/internal/realtime"
	apperrors "github.com/quillchat/quill/pkg/errors"
	"github.com/quillchat/quill/pkg/mail"
	"github.com/quillchat/quill/pkg/metrics"
)

var (
	// ErrInviteNotFound indicates no invite matches the provided token or id.
	ErrInviteNotFound = apperrors.New("INVITE_NOT_FOUND", "Invite not found", http.StatusNotFound)
	// ErrInviteAlreadyProcessed rejects accept decisions on invites that were already settled.
	ErrInviteAlreadyProcessed = apperrors.New("INVITE_ALREADY_PROCESSED", "Invite has already been processed", http.StatusBadRequest)
	// ErrInviteNotPending reports reject links whose token matches no pending invite.
	ErrInviteNotPending = apperrors.New("INVITE_NOT_PENDING", "No pending invite matches this token", http.StatusNotFound)
	// ErrInviteDuplicate signals an open invite already exists for this invitee and target.
	ErrInviteDuplicate = apperrors.New("INVITE_PENDING_EXISTS", "An invite for this user is already pending", http.StatusBadRequest)
	// ErrInviteAlreadyMember rejects invites addressed to existing members.
	ErrInviteAlreadyMember = apperrors.New("INVITE_ALREADY_MEMBER", "User is already a member", http.StatusBadRequest)
	// ErrInviteEmailMismatch rejects accepting an invite addressed to someone else.
	ErrInviteEmailMismatch = apperrors.New("INVITE_EMAIL_MISMATCH", "Invite is addressed to a different account", http.StatusForbidden)
	// ErrInviteTokenInvalid covers malformed, forged and expired invite tokens.
	ErrInviteTokenInvalid = apperrors.New("INVITE_TOKEN_INVALID", "Invite token is invalid or expired", http.StatusBadRequest)
)

// InviteOption customises InviteService behaviour.
type InviteOption func(*InviteService)

// WithInviteMailer enables email delivery of invite links.
func WithInviteMailer(mailer mail.Mailer) InviteOption {
	return func(s *InviteService) {
		s.mailer = mailer
	}
}

// WithInviteBroadcaster enables realtime notification of invitees.
func WithInviteBroadcaster(broadcaster realtime.Broadcaster) InviteOption {
	return func(s *InviteService) {
		s.broadcaster = broadcaster
	}
}

// WithInviteBaseURL configures the base URL used to create invite hyperlinks.
func WithInviteBaseURL(url string) InviteOption {
	return func(s *InviteService) {
		s.baseURL = strings.TrimRight(url, "/")
	}
}

// CreateWorkspaceInviteInput describes a workspace invite request.
type CreateWorkspaceInviteInput struct {
	WorkspaceID  string
	InviterID    string
	InviteeEmail string
}

// CreateChannelInviteInput describes a channel invite request.
type CreateChannelInviteInput struct {
	ChannelID    string
	InviterID    string
	InviteeEmail string
}

// InviteDecisionInput identifies the caller deciding on a token invite.
type InviteDecisionInput struct {
	Token  string
	UserID string
	Email  string
}

// PendingInvites groups the open invites addressed to one account.
type PendingInvites struct {
	Workspace []models.WorkspaceInvite `json:"workspace"`
	Channel   []models.ChannelInvite   `json:"channel"`
}

// InviteService manages the invite lifecycle for workspaces and channels.
type InviteService struct {
	db           *gorm.DB
	jwt          *iauth.JWTService
	users        *UserService
	workspaces   *WorkspaceService
	channels     *ChannelService
	auditService *AuditService
	mailer       mail.Mailer
	broadcaster  realtime.Broadcaster
	baseURL      string
}

// NewInviteService constructs an InviteService with the provided dependencies.
func NewInviteService(
	db *gorm.DB,
	jwt *iauth.JWTService,
	users *UserService,
	workspaces *WorkspaceService,
	channels *ChannelService,
	auditService *AuditService,
	opts ...InviteOption,
) (*InviteService, error) {
	if db == nil {
		return nil, errors.New("invite service: db is required")
	}
	if jwt == nil {
		return nil, errors.New("invite service: jwt service is required")
	}
	if users == nil || workspaces == nil || channels == nil {
		return nil, errors.New("invite service: user, workspace and channel services are required")
	}

	service := &InviteService{
		db:           db,
		jwt:          jwt,
		users:        users,
		workspaces:   workspaces,
		channels:     channels,
		auditService: auditService,
	}

	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// CreateWorkspaceInvite issues a pending invite addressed to an existing
// account and notifies the invitee by email and realtime stream.
func (s *InviteService) CreateWorkspaceInvite(ctx context.Context, input CreateWorkspaceInviteInput) (*models.WorkspaceInvite, error) {
	ctx = ensureContext(ctx)

	email := normaliseEmail(input.InviteeEmail)
	if email == "" {
		return nil, apperrors.NewBadRequest("invitee email is required")
	}

	workspace, err := s.workspaces.RequireMember(ctx, input.WorkspaceID, input.InviterID)
	if err != nil {
		return nil, err
	}

	invitee, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	isMember, err := s.workspaces.IsMember(ctx, workspace.ID, invitee.ID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, ErrInviteAlreadyMember
	}

	if err := s.ensureNoPendingWorkspaceInvite(ctx, email, workspace.ID); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateInviteToken(iauth.InviteTokenInput{
		Email:       email,
		WorkspaceID: workspace.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("invite service: sign token: %w", err)
	}

	invite := &models.WorkspaceInvite{
		InviteeEmail: email,
		InviterID:    input.InviterID,
		WorkspaceID:  workspace.ID,
		Token:        token,
		Status:       models.InviteStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(invite).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrInviteDuplicate
		}
		return nil, fmt.Errorf("invite service: create invite: %w", err)
	}

	s.sendInviteMail(ctx, email, workspace.Name, token, "workspace")
	s.notifyUser(invitee.ID, realtime.EventWorkspaceInvite, map[string]any{
		"invite_id":    invite.ID,
		"workspace_id": workspace.ID,
		"workspace":    workspace.Name,
	})
	s.notifyUser(input.InviterID, realtime.EventInviteSent, map[string]any{
		"invite_id":    invite.ID,
		"workspace_id": workspace.ID,
		"invitee":      email,
	})

	metrics.InviteEvents.WithLabelValues("workspace", "created").Inc()
	recordAudit(s.auditService, ctx, AuditEntry{
		UserID:   &input.InviterID,
		Action:   "invite.workspace.create",
		Resource: invite.ID,
		Result:   "success",
		Metadata: map[string]any{"workspace_id": workspace.ID, "invitee": email},
	})

	return invite, nil
}

// CreateChannelInvite issues a pending channel invite. Any member of the
// parent workspace may invite; the invitee gains a pending placeholder row so
// the channel roster shows the outstanding offer.
func (s *InviteService) CreateChannelInvite(ctx context.Context, input CreateChannelInviteInput) (*models.ChannelInvite, error) {
	ctx = ensureContext(ctx)

	email := normaliseEmail(input.InviteeEmail)
	if email == "" {
		return nil, apperrors.NewBadRequest("invitee email is required")
	}

	channel, err := s.channels.GetByID(ctx, input.ChannelID)
	if err != nil {
		return nil, err
	}
	if _, err := s.workspaces.RequireMember(ctx, channel.WorkspaceID, input.InviterID); err != nil {
		return nil, err
	}

	invitee, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	isMember, err := s.channels.IsMember(ctx, channel.ID, invitee.ID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, ErrInviteAlreadyMember
	}

	if err := s.ensureNoPendingChannelInvite(ctx, email, channel.ID); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateInviteToken(iauth.InviteTokenInput{
		Email:     email,
		ChannelID: channel.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("invite service: sign token: %w", err)
	}

	invite := &models.ChannelInvite{
		InviteeEmail: email,
		InviterID:    input.InviterID,
		ChannelID:    channel.ID,
		Token:        token,
		Status:       models.InviteStatusPending,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(invite).Error; err != nil {
			return err
		}

		// Guest access to the owning workspace so the invitee can see the
		// pending channel before deciding.
		if err := s.workspaces.EnsureMember(ctx, tx, channel.WorkspaceID, invitee.ID, models.WorkspaceRoleGuest); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.ChannelMember{}).
			Where("channel_id = ? AND user_id = ?", channel.ID, invitee.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		placeholder := &models.ChannelMember{
			UserID:    invitee.ID,
			ChannelID: channel.ID,
			Status:    models.ChannelMemberStatusPending,
		}
		return tx.Create(placeholder).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrInviteDuplicate
		}
		return nil, fmt.Errorf("invite service: create invite: %w", err)
	}

	s.sendInviteMail(ctx, email, channel.Name, token, "channel")
	s.notifyUser(invitee.ID, realtime.EventWorkspaceInvite, map[string]any{
		"invite_id":  invite.ID,
		"channel_id": channel.ID,
		"channel":    channel.Name,
	})
	s.notifyUser(input.InviterID, realtime.EventInviteSent, map[string]any{
		"invite_id":  invite.ID,
		"channel_id": channel.ID,
		"invitee":    email,
	})

	metrics.InviteEvents.WithLabelValues("channel", "created").Inc()
	recordAudit(s.auditService, ctx, AuditEntry{
		UserID:   &input.InviterID,
		Action:   "invite.channel.create",
		Resource: invite.ID,
		Result:   "success",
		Metadata: map[string]any{"channel_id": channel.ID, "invitee": email},
	})

	return invite, nil
}

// AcceptWorkspaceInvite settles a token invite and enrols the caller.
func (s *InviteService) AcceptWorkspaceInvite(ctx context.Context, input InviteDecisionInput) (*models.WorkspaceInvite, error) {
	ctx = ensureContext(ctx)

	claims, err := s.jwt.ValidateInviteToken(strings.TrimSpace(input.Token))
	if err != nil || claims.WorkspaceID == "" {
		return nil, ErrInviteTokenInvalid
	}

	var invite models.WorkspaceInvite
	if err := s.db.WithContext(ctx).
		First(&invite, "token = ?", strings.TrimSpace(input.Token)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("invite service: find invite: %w", err)
	}

	return s.settleWorkspaceInvite(ctx, &invite, input.UserID, input.Email)
}

// AcceptWorkspaceInviteByID settles a pending invite selected from the
// caller's inbox rather than an emailed token link.
func (s *InviteService) AcceptWorkspaceInviteByID(ctx context.Context, workspaceID, inviteID, userID, email string) (*models.WorkspaceInvite, error) {
	ctx = ensureContext(ctx)

	var invite models.WorkspaceInvite
	err := s.db.WithContext(ctx).
		First(&invite, "id = ? AND workspace_id = ?", inviteID, workspaceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInviteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("invite service: find invite: %w", err)
	}

	return s.settleWorkspaceInvite(ctx, &invite, userID, email)
}

func (s *InviteService) settleWorkspaceInvite(ctx context.Context, invite *models.WorkspaceInvite, userID, email string) (*models.WorkspaceInvite, error) {
	if invite.Status != models.InviteStatusPending {
		return nil, ErrInviteAlreadyProcessed
	}
	if invite.InviteeEmail != normaliseEmail(email) {
		return nil, ErrInviteEmailMismatch
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.WorkspaceInvite{}).
			Where("id = ? AND status = ?", invite.ID, models.InviteStatusPending).
			Update("status", models.InviteStatusAccepted)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInviteAlreadyProcessed
		}

		return s.workspaces.EnsureMember(ctx, tx, invite.WorkspaceID, userID, models.WorkspaceRoleMember)
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, fmt.Errorf("invite service: accept invite: %w", err)
	}

	invite.Status = models.InviteStatusAccepted
	s.notifyUser(invite.InviterID, realtime.EventWorkspaceInvite, map[string]any{
		"invite_id":    invite.ID,
		"workspace_id": invite.WorkspaceID,
		"status":       invite.Status,
	})

	metrics.InviteEvents.WithLabelValues("workspace", "accepted").Inc()
	recordAudit(s.auditService, ctx, AuditEntry{
		UserID:   &userID,
		Email:    invite.InviteeEmail,
		Action:   "invite.workspace.accept",
		Resource: invite.ID,
		Result:   "success",
	})

	return invite, nil
}

// RejectWorkspaceInvite settles a token invite as rejected. The decision is
// taken from the emailed link, so no authentication is required.
func (s *InviteService) RejectWorkspaceInvite(ctx context.Context, token string) (*models.WorkspaceInvite, error) {
	ctx = ensureContext(ctx)

	token = strings.TrimSpace(token)
	if _, err := s.jwt.ValidateInviteToken(token); err != nil {
		return nil, ErrInviteTokenInvalid
	}

	var invite models.WorkspaceInvite
	err := s.db.WithContext(ctx).
		First(&invite, "token = ? AND status = ?", token, models.InviteStatusPending).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInviteNotPending
	}
	if err != nil {
		return nil, fmt.Errorf("invite service: find invite: %w", err)
	}

	if err := s.db.WithContext(ctx).
		Model(&models.WorkspaceInvite{}).
		Where("id = ?", invite.ID).
		Update("status", models.InviteStatusRejected).Error; err != nil {
		return nil, fmt.Errorf("invite service: reject invite: %w", err)
	}

	invite.Status = models.InviteStatusRejected
	metrics.InviteEvents.WithLabelValues("workspace", "rejected").Inc()
	recordAudit(s.auditService, ctx, AuditEntry{
		Email:    invite.InviteeEmail,
		Action:   "invite.workspace.reject",
		Resource: invite.ID,
		Result:   "success",
	})

	return &invite, nil
}

// AcceptChannelInvite settles a channel token invite, promotes the pending
// placeholder and provisions guest access to the parent workspace.
func (s *InviteService) AcceptChannelInvite(ctx context.Context, input InviteDecisionInput) (*models.ChannelInvite, error) {
	ctx = ensureContext(ctx)

	claims, err := s.jwt.ValidateInviteToken(strings.TrimSpace(input.Token))
	if err != nil || claims.ChannelID == "" {
		return nil, ErrInviteTokenInvalid
	}

	var invite models.ChannelInvite
	if err := s.db.WithContext(ctx).
		First(&invite, "token = ?", strings.TrimSpace(input.Token)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("invite service: find invite: %w", err)
	}

	if invite.Status != models.InviteStatusPending {
		return nil, ErrInviteAlreadyProcessed
	}
	if invite.InviteeEmail != normaliseEmail(input.Email) {
		return nil, ErrInviteEmailMismatch
	}

	channel, err := s.channels.GetByID(ctx, invite.ChannelID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ChannelInvite{}).
			Where("id = ? AND status = ?", invite.ID, models.InviteStatusPending).
			Update("status", models.InviteStatusAccepted)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInviteAlreadyProcessed
		}

		if err := s.channels.EnsureMember(ctx, tx, invite.ChannelID, input.UserID); err != nil {
			return err
		}

		// Channel guests get a guest-role row in the parent workspace so
		// lookups and streams resolve, without full workspace access.
		return s.workspaces.EnsureMember(ctx, tx, channel.WorkspaceID, input.UserID, models.WorkspaceRoleGuest)
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, fmt.Errorf("invite service: accept invite: %w", err)
	}

	invite.Status = models.InviteStatusAccepted
	s.notifyUser(invite.InviterID, realtime.EventInviteSent, map[string]any{
		"invite_id":  invite.ID,
		"channel_id": invite.ChannelID,
		"status":     invite.Status,
	})

	metrics.InviteEvents.WithLabelValues("channel", "accepted").Inc()
	recordAudit(s.auditService, ctx, AuditEntry{
		UserID:   &input.UserID,
		Email:    invite.InviteeEmail,
		Action:   "invite.channel.accept",
		Resource: invite.ID,
		Result:   "success",
	})

	return &invite, nil
}

// RejectChannelInvite settles a channel token invite as rejected and removes
// the pending placeholder row.
func (s *InviteService) RejectChannelInvite(ctx context.Context, token string) (*models.ChannelInvite, error) {
	ctx = ensureContext(ctx)

	token = strings.TrimSpace(token)
	if _, err := s.jwt.ValidateInviteToken(token); err != nil {
		return nil, ErrInviteTokenInvalid
	}

	var invite models.ChannelInvite
	err := s.db.WithContext(ctx).
		First(&invite, "token = ? AND status = ?", token, models.InviteStatusPending).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInviteNotPending
	}
	if err != nil {
		return nil, fmt.Errorf("invite service: find invite: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ChannelInvite{}).
			Where("id = ?", invite.ID).
			Update("status", models.InviteStatusRejected).Error; err != nil {
			return err
		}

		var invitee models.User
		if err := tx.First(&invitee, "email = ?", invite.InviteeEmail).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		return tx.Where("channel_id = ? AND user_id = ? AND status = ?",
			invite.ChannelID, invitee.ID, models.ChannelMemberStatusPending).
			Delete(&models.ChannelMember{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("invite service: reject invite: %w", err)
	}

	invite.Status = models.InviteStatusRejected
	metrics.InviteEvents.WithLabelValues("channel", "rejected").Inc()
	recordAudit(s.auditService, ctx, AuditEntry{
		Email:    invite.InviteeEmail,
		Action:   "invite.channel.reject",
		Resource: invite.ID,
		Result:   "success",
	})

	return &invite, nil
}

// ListWorkspaceInvites returns all invites issued for a workspace.
func (s *InviteService) ListWorkspaceInvites(ctx context.Context, workspaceID, callerID string) ([]models.WorkspaceInvite, error) {
	ctx = ensureContext(ctx)

	if _, err := s.workspaces.RequireMember(ctx, workspaceID, callerID); err != nil {
		return nil, err
	}

	var invites []models.WorkspaceInvite
	err := s.db.WithContext(ctx).
		Preload("Inviter").
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Find(&invites).Error
	if err != nil {
		return nil, fmt.Errorf("invite service: list invites: %w", err)
	}
	return invites, nil
}

// ListChannelInvites returns all invites issued for a channel.
func (s *InviteService) ListChannelInvites(ctx context.Context, channelID, callerID string) ([]models.ChannelInvite, error) {
	ctx = ensureContext(ctx)

	channel, err := s.channels.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if _, err := s.workspaces.RequireMember(ctx, channel.WorkspaceID, callerID); err != nil {
		return nil, err
	}

	var invites []models.ChannelInvite
	err = s.db.WithContext(ctx).
		Preload("Inviter").
		Where("channel_id = ?", channelID).
		Order("created_at DESC").
		Find(&invites).Error
	if err != nil {
		return nil, fmt.Errorf("invite service: list invites: %w", err)
	}
	return invites, nil
}

// ListPendingForEmail returns the open invites addressed to an account.
func (s *InviteService) ListPendingForEmail(ctx context.Context, email string) (*PendingInvites, error) {
	ctx = ensureContext(ctx)

	email = normaliseEmail(email)
	pending := &PendingInvites{
		Workspace: []models.WorkspaceInvite{},
		Channel:   []models.ChannelInvite{},
	}

	if err := s.db.WithContext(ctx).
		Preload("Inviter").
		Preload("Workspace").
		Where("invitee_email = ? AND status = ?", email, models.InviteStatusPending).
		Order("created_at DESC").
		Find(&pending.Workspace).Error; err != nil {
		return nil, fmt.Errorf("invite service: list workspace invites: %w", err)
	}

	if err := s.db.WithContext(ctx).
		Preload("Inviter").
		Preload("Channel").
		Where("invitee_email = ? AND status = ?", email, models.InviteStatusPending).
		Order("created_at DESC").
		Find(&pending.Channel).Error; err != nil {
		return nil, fmt.Errorf("invite service: list channel invites: %w", err)
	}

	return pending, nil
}

func (s *InviteService) ensureNoPendingWorkspaceInvite(ctx context.Context, email, workspaceID string) error {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.WorkspaceInvite{}).
		Where("invitee_email = ? AND workspace_id = ? AND status = ?", email, workspaceID, models.InviteStatusPending).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("invite service: check pending invites: %w", err)
	}
	if count > 0 {
		return ErrInviteDuplicate
	}
	return nil
}

func (s *InviteService) ensureNoPendingChannelInvite(ctx context.Context, email, channelID string) error {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.ChannelInvite{}).
		Where("invitee_email = ? AND channel_id = ? AND status = ?", email, channelID, models.InviteStatusPending).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("invite service: check pending invites: %w", err)
	}
	if count > 0 {
		return ErrInviteDuplicate
	}
	return nil
}

func (s *InviteService) sendInviteMail(ctx context.Context, email, targetName, token, kind string) {
	if s.mailer == nil {
		return
	}

	link := token
	if s.baseURL != "" {
		link = fmt.Sprintf("%s/invite/accept?token=%s", s.baseURL, token)
	}

	message := mail.Message{
		To:      []string{email},
		Subject: fmt.Sprintf("You're invited to join %s on Quill", targetName),
		Body: fmt.Sprintf(
			"Hello,\n\nYou have been invited to join the %s %q on Quill. Use the following link to accept your invite:\n%s\n\nIf you did not expect this email, you can ignore it.\n",
			kind, targetName, link,
		),
	}
	// Invite creation must not fail because mail is down or disabled.
	_ = s.mailer.Send(ctx, message)
}

func (s *InviteService) notifyUser(userID, event string, data map[string]any) {
	if s.broadcaster == nil || userID == "" {
		return
	}
	s.broadcaster.BroadcastToUser(realtime.UserStream(userID), userID, realtime.Message{
		Event: event,
		Data:  data,
	})
}
