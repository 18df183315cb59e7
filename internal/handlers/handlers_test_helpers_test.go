package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	iauth "github.com/quillchat/quill/internal/auth"
	"github.com/quillchat/quill/internal/database/testutil"
	"github.com/quillchat/quill/internal/middleware"
	"github.com/quillchat/quill/internal/models"
	"github.com/quillchat/quill/internal/realtime"
	"github.com/quillchat/quill/internal/services"
	"github.com/quillchat/quill/pkg/response"
)

type handlerEnv struct {
	db            *gorm.DB
	jwt           *iauth.JWTService
	users         *services.UserService
	organizations *services.OrganizationService
	workspaces    *services.WorkspaceService
	channels      *services.ChannelService
	invites       *services.InviteService
	messages      *services.MessageService
	hub           *realtime.Hub
}

func newHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	jwt, err := iauth.NewJWTService(iauth.JWTConfig{Secret: "handler-test-secret"})
	require.NoError(t, err)

	users, err := services.NewUserService(db, nil)
	require.NoError(t, err)
	organizations, err := services.NewOrganizationService(db)
	require.NoError(t, err)
	workspaces, err := services.NewWorkspaceService(db, nil)
	require.NoError(t, err)
	channels, err := services.NewChannelService(db, workspaces, nil)
	require.NoError(t, err)

	hub := realtime.NewHub()

	invites, err := services.NewInviteService(db, jwt, users, workspaces, channels, nil,
		services.WithInviteBroadcaster(hub))
	require.NoError(t, err)

	messages, err := services.NewMessageService(db, channels, hub, nil)
	require.NoError(t, err)

	return &handlerEnv{
		db:            db,
		jwt:           jwt,
		users:         users,
		organizations: organizations,
		workspaces:    workspaces,
		channels:      channels,
		invites:       invites,
		messages:      messages,
		hub:           hub,
	}
}

func (e *handlerEnv) mustRegister(t *testing.T, email, firstName string) *models.User {
	t.Helper()
	user, err := e.users.Register(context.Background(), services.RegisterInput{
		Email:     email,
		Password:  "sup3r-secret",
		FirstName: firstName,
		LastName:  "Doe",
	})
	require.NoError(t, err)
	return user
}

func (e *handlerEnv) mustCreateWorkspace(t *testing.T, name, ownerID string) *models.Workspace {
	t.Helper()
	workspace, err := e.workspaces.Create(context.Background(), services.CreateWorkspaceInput{
		Name:    name,
		OwnerID: ownerID,
	})
	require.NoError(t, err)
	return workspace
}

func (e *handlerEnv) mustCreateChannel(t *testing.T, name, workspaceID, creatorID string) *models.Channel {
	t.Helper()
	channel, err := e.channels.Create(context.Background(), services.CreateChannelInput{
		Name:        name,
		WorkspaceID: workspaceID,
		CreatorID:   creatorID,
	})
	require.NoError(t, err)
	return channel
}

type testRequest struct {
	method string
	path   string
	body   any
	user   *models.User
	params gin.Params
	query  string
}

// do builds a gin test context for the request, optionally stamping the
// session context keys the auth middleware would set, and runs the handler.
func do(t *testing.T, req testRequest, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	var body *bytes.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	target := req.path
	if target == "" {
		target = "/"
	}
	if req.query != "" {
		target += "?" + req.query
	}

	httpReq, err := http.NewRequest(req.method, target, body)
	require.NoError(t, err)
	httpReq.Header.Set("Content-Type", "application/json")
	c.Request = httpReq
	c.Params = req.params

	if req.user != nil {
		c.Set(middleware.CtxUserIDKey, req.user.ID)
		c.Set(middleware.CtxUserEmailKey, req.user.Email)
	}

	handler(c)
	return recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var payload response.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	return payload
}

// decodeData re-marshals the envelope data into the given destination.
func decodeData(t *testing.T, payload response.Response, dest any) {
	t.Helper()
	raw, err := json.Marshal(payload.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dest))
}
