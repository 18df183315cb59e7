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
	// ErrWorkspaceNotFound indicates the requested workspace does not exist.
	ErrWorkspaceNotFound = apperrors.New("WORKSPACE_NOT_FOUND", "Workspace not found", http.StatusNotFound)
	// ErrNotWorkspaceMember rejects callers acting on a workspace they do not belong to.
	ErrNotWorkspaceMember = apperrors.New("WORKSPACE_FORBIDDEN", "You are not a member of this workspace", http.StatusForbidden)
)

// CreateWorkspaceInput describes the fields accepted when creating a workspace.
type CreateWorkspaceInput struct {
	Name           string
	OwnerID        string
	OrganizationID string
}

// WorkspaceService manages workspaces and their membership rows.
type WorkspaceService struct {
	db           *gorm.DB
	auditService *AuditService
}

// NewWorkspaceService constructs a WorkspaceService instance.
func NewWorkspaceService(db *gorm.DB, auditService *AuditService) (*WorkspaceService, error) {
	if db == nil {
		return nil, errors.New("workspace service: db is required")
	}
	return &WorkspaceService{
		db:           db,
		auditService: auditService,
	}, nil
}

// Create provisions a workspace with a generated accent colour and enrols the
// owner as its first member.
func (s *WorkspaceService) Create(ctx context.Context, input CreateWorkspaceInput) (*models.Workspace, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewBadRequest("workspace name is required")
	}
	if strings.TrimSpace(input.OwnerID) == "" {
		return nil, apperrors.NewBadRequest("workspace owner is required")
	}

	workspace := &models.Workspace{
		Name:    name,
		Color:   randomHSLColor(),
		OwnerID: input.OwnerID,
	}
	if orgID := strings.TrimSpace(input.OrganizationID); orgID != "" {
		workspace.OrganizationID = &orgID
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(workspace).Error; err != nil {
			return err
		}

		member := &models.WorkspaceMember{
			UserID:      input.OwnerID,
			WorkspaceID: workspace.ID,
			Role:        models.WorkspaceRoleOwner,
		}
		return tx.Create(member).Error
	})
	if err != nil {
		return nil, fmt.Errorf("workspace service: create workspace: %w", err)
	}

	recordAudit(s.auditService, ctx, AuditEntry{
		UserID:   &input.OwnerID,
		Action:   "workspace.create",
		Resource: workspace.ID,
		Result:   "success",
		Metadata: map[string]any{"name": workspace.Name},
	})

	return workspace, nil
}

// GetByID loads a workspace by identifier.
func (s *WorkspaceService) GetByID(ctx context.Context, id string) (*models.Workspace, error) {
	ctx = ensureContext(ctx)

	var workspace models.Workspace
	err := s.db.WithContext(ctx).First(&workspace, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWorkspaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("workspace service: get workspace: %w", err)
	}
	return &workspace, nil
}

// ListForUser returns the workspaces the user belongs to, newest first.
func (s *WorkspaceService) ListForUser(ctx context.Context, userID string) ([]models.Workspace, error) {
	ctx = ensureContext(ctx)

	var workspaces []models.Workspace
	err := s.db.WithContext(ctx).
		Joins("JOIN workspace_members ON workspace_members.workspace_id = workspaces.id").
		Where("workspace_members.user_id = ?", userID).
		Preload("Members.User").
		Order("workspaces.created_at DESC").
		Find(&workspaces).Error
	if err != nil {
		return nil, fmt.Errorf("workspace service: list workspaces: %w", err)
	}
	return workspaces, nil
}

// ListMembers returns workspace membership rows including user details.
func (s *WorkspaceService) ListMembers(ctx context.Context, workspaceID string) ([]models.WorkspaceMember, error) {
	ctx = ensureContext(ctx)

	if _, err := s.GetByID(ctx, workspaceID); err != nil {
		return nil, err
	}

	var members []models.WorkspaceMember
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("workspace service: list members: %w", err)
	}
	return members, nil
}

// IsMember reports whether the user belongs to the workspace.
func (s *WorkspaceService) IsMember(ctx context.Context, workspaceID, userID string) (bool, error) {
	ctx = ensureContext(ctx)

	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("workspace service: check membership: %w", err)
	}
	return count > 0, nil
}

// RequireMember loads the workspace and verifies the caller's membership.
func (s *WorkspaceService) RequireMember(ctx context.Context, workspaceID, userID string) (*models.Workspace, error) {
	workspace, err := s.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	member, err := s.IsMember(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotWorkspaceMember
	}
	return workspace, nil
}

// EnsureMember enrols the user when no membership row exists yet. Existing
// rows keep their role untouched.
func (s *WorkspaceService) EnsureMember(ctx context.Context, tx *gorm.DB, workspaceID, userID, role string) error {
	ctx = ensureContext(ctx)
	if tx == nil {
		tx = s.db
	}
	if role == "" {
		role = models.WorkspaceRoleMember
	}

	var count int64
	if err := tx.WithContext(ctx).
		Model(&models.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("workspace service: check membership: %w", err)
	}
	if count > 0 {
		return nil
	}

	member := &models.WorkspaceMember{
		UserID:      userID,
		WorkspaceID: workspaceID,
		Role:        role,
	}
	if err := tx.WithContext(ctx).Create(member).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil
		}
		return fmt.Errorf("workspace service: enrol member: %w", err)
	}
	return nil
}
