package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quillchat/quill/internal/models"
)

func TestAuditServiceLogAndList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	audit, err := NewAuditService(env.db)
	require.NoError(t, err)

	user := env.mustRegister(t, "jane@example.com", "Jane")

	require.NoError(t, audit.Log(ctx, AuditEntry{
		UserID:   &user.ID,
		Email:    user.Email,
		Action:   "invite.workspace.create",
		Resource: "invite-1",
		Result:   "success",
		Metadata: map[string]any{"workspace_id": "ws-1"},
	}))

	require.Error(t, audit.Log(ctx, AuditEntry{Result: "success"}), "action is required")
	require.Error(t, audit.Log(ctx, AuditEntry{Action: "x"}), "result is required")

	logs, total, err := audit.List(ctx, AuditListOptions{
		Filters: AuditFilters{Action: "invite.workspace.create"},
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, logs, 1)
	require.Contains(t, logs[0].Metadata, "ws-1")
	require.NotNil(t, logs[0].User)
}

func TestAuditServiceCleanupOlderThan(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	audit, err := NewAuditService(env.db)
	require.NoError(t, err)

	old := models.AuditLog{
		Action:    "user.login",
		Result:    "success",
		CreatedAt: time.Now().AddDate(0, 0, -120),
	}
	require.NoError(t, env.db.Create(&old).Error)
	// gorm refreshes CreatedAt on create; force the value back.
	require.NoError(t, env.db.Model(&models.AuditLog{}).
		Where("id = ?", old.ID).
		Update("created_at", time.Now().AddDate(0, 0, -120)).Error)

	recent := models.AuditLog{Action: "user.login", Result: "success"}
	require.NoError(t, env.db.Create(&recent).Error)

	removed, err := audit.CleanupOlderThan(ctx, 90)
	require.NoError(t, err)
	require.EqualValues(t, 1, removed)

	_, err = audit.CleanupOlderThan(ctx, 0)
	require.Error(t, err)
}
