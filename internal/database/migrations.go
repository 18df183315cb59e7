package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/quillchat/quill/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Workspace{},
		&models.WorkspaceMember{},
		&models.Channel{},
		&models.ChannelMember{},
		&models.WorkspaceInvite{},
		&models.ChannelInvite{},
		&models.Message{},
		&models.AuditLog{},
		&models.CacheEntry{},
	); err != nil {
		return err
	}

	return ensurePendingInviteIndexes(db)
}

// ensurePendingInviteIndexes installs partial unique indexes so at most one
// pending invite exists per invitee and target. Accepted and rejected rows
// stay behind as history without tripping the constraint. MySQL has no
// partial indexes; the invite service re-checks before insert there.
func ensurePendingInviteIndexes(db *gorm.DB) error {
	if db.Dialector.Name() == "mysql" {
		return nil
	}

	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_workspace_invites_pending
			ON workspace_invites (invitee_email, workspace_id) WHERE status = 'pending'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_channel_invites_pending
			ON channel_invites (invitee_email, channel_id) WHERE status = 'pending'`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create invite index: %w", err)
		}
	}

	return nil
}
