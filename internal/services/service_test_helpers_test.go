package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	iauth "github.com/quillchat/quill/internal/auth"
	"github.com/quillchat/quill/internal/database/testutil"
	"github.com/quillchat/quill/internal/models"
	"github.com/quillchat/quill/internal/realtime"
)

// capturingBroadcaster records broadcasts for assertions.
type capturingBroadcaster struct {
	mu       sync.Mutex
	streamed []realtime.Message
	users    map[string][]realtime.Message
}

func newCapturingBroadcaster() *capturingBroadcaster {
	return &capturingBroadcaster{users: make(map[string][]realtime.Message)}
}

func (b *capturingBroadcaster) BroadcastStream(stream string, message realtime.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	message.Stream = stream
	b.streamed = append(b.streamed, message)
}

func (b *capturingBroadcaster) BroadcastToUser(stream, userID string, message realtime.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	message.Stream = stream
	b.users[userID] = append(b.users[userID], message)
}

func (b *capturingBroadcaster) userMessages(userID string) []realtime.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]realtime.Message(nil), b.users[userID]...)
}

func (b *capturingBroadcaster) streamMessages() []realtime.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]realtime.Message(nil), b.streamed...)
}

type testEnv struct {
	db          *gorm.DB
	jwt         *iauth.JWTService
	users       *UserService
	workspaces  *WorkspaceService
	channels    *ChannelService
	invites     *InviteService
	messages    *MessageService
	broadcaster *capturingBroadcaster
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	jwtSvc, err := iauth.NewJWTService(iauth.JWTConfig{Secret: "test-secret"})
	require.NoError(t, err)

	auditSvc, err := NewAuditService(db)
	require.NoError(t, err)

	userSvc, err := NewUserService(db, auditSvc)
	require.NoError(t, err)

	workspaceSvc, err := NewWorkspaceService(db, auditSvc)
	require.NoError(t, err)

	channelSvc, err := NewChannelService(db, workspaceSvc, auditSvc)
	require.NoError(t, err)

	broadcaster := newCapturingBroadcaster()

	inviteSvc, err := NewInviteService(db, jwtSvc, userSvc, workspaceSvc, channelSvc, auditSvc,
		WithInviteBroadcaster(broadcaster),
		WithInviteBaseURL("https://quill.test"),
	)
	require.NoError(t, err)

	messageSvc, err := NewMessageService(db, channelSvc, broadcaster, auditSvc)
	require.NoError(t, err)

	return &testEnv{
		db:          db,
		jwt:         jwtSvc,
		users:       userSvc,
		workspaces:  workspaceSvc,
		channels:    channelSvc,
		invites:     inviteSvc,
		messages:    messageSvc,
		broadcaster: broadcaster,
	}
}

func (e *testEnv) mustRegister(t *testing.T, email, firstName string) *models.User {
	t.Helper()

	user, err := e.users.Register(context.Background(), RegisterInput{
		Email:     email,
		Password:  "password123",
		FirstName: firstName,
		LastName:  "Tester",
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) mustCreateWorkspace(t *testing.T, name, ownerID string) *models.Workspace {
	t.Helper()

	workspace, err := e.workspaces.Create(context.Background(), CreateWorkspaceInput{
		Name:    name,
		OwnerID: ownerID,
	})
	require.NoError(t, err)
	return workspace
}

func (e *testEnv) mustCreateChannel(t *testing.T, name, workspaceID, creatorID string) *models.Channel {
	t.Helper()

	channel, err := e.channels.Create(context.Background(), CreateChannelInput{
		Name:        name,
		WorkspaceID: workspaceID,
		CreatorID:   creatorID,
	})
	require.NoError(t, err)
	return channel
}
