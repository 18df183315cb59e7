package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	iauth "github.com/quillchat/quill/internal/auth"
	"github.com/quillchat/quill/internal/middleware"
	"github.com/quillchat/quill/internal/realtime"
	"github.com/quillchat/quill/internal/services"
	appErrors "github.com/quillchat/quill/pkg/errors"
	"github.com/quillchat/quill/pkg/response"
)

// RealtimeHandler upgrades HTTP connections into authenticated WebSocket streams.
type RealtimeHandler struct {
	hub      *realtime.Hub
	jwt      *iauth.JWTService
	channels *services.ChannelService
}

func NewRealtimeHandler(hub *realtime.Hub, jwt *iauth.JWTService, channels *services.ChannelService) *RealtimeHandler {
	return &RealtimeHandler{hub: hub, jwt: jwt, channels: channels}
}

// Stream validates the caller and upgrades the request to the hub. Streams
// the caller may not watch are silently dropped from the subscription set.
func (h *RealtimeHandler) Stream(c *gin.Context) {
	if h.jwt == nil || h.hub == nil {
		response.Error(c, appErrors.ErrServerMisconfigured)
		return
	}

	token := h.sessionToken(c)
	if token == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	claims, err := h.jwt.ValidateSessionToken(token)
	if err != nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	userID := strings.TrimSpace(claims.UserID)
	if userID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	streams := gatherStreams(c)
	if len(streams) == 0 {
		streams = []string{realtime.UserStream(userID)}
	}

	allowed := h.authorizedStreams(c, userID, streams)
	subscribe := make([]string, 0, len(streams))
	for _, stream := range streams {
		if _, ok := allowed[stream]; ok {
			subscribe = append(subscribe, stream)
		}
	}

	h.hub.Serve(userID, subscribe, allowed, c.Writer, c.Request)
}

// authorizedStreams filters the requested set down to what the caller may
// watch: their own private stream plus channels where a membership row
// (settled or pending) exists.
func (h *RealtimeHandler) authorizedStreams(c *gin.Context, userID string, requested []string) map[string]struct{} {
	ctx := requestContext(c)
	own := realtime.UserStream(userID)

	allowed := map[string]struct{}{own: {}}
	for _, stream := range requested {
		if stream == own {
			continue
		}
		channelID, ok := strings.CutPrefix(stream, realtime.ChannelStreamPrefix)
		if !ok || channelID == "" {
			continue
		}
		if h.channels == nil {
			continue
		}
		member, err := h.channels.HasMembershipRow(ctx, channelID, userID)
		if err != nil || !member {
			continue
		}
		allowed[stream] = struct{}{}
	}
	return allowed
}

func (h *RealtimeHandler) sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		if cookie = strings.TrimSpace(cookie); cookie != "" {
			return cookie
		}
	}

	if token := strings.TrimSpace(c.Query("token")); token != "" {
		return token
	}

	authz := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	return ""
}

func gatherStreams(c *gin.Context) []string {
	var streams []string

	for _, queryStream := range c.QueryArray("stream") {
		if normalized := normalizeStream(queryStream); normalized != "" {
			streams = append(streams, normalized)
		}
	}

	raw := c.Query("streams")
	if raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if normalized := normalizeStream(part); normalized != "" {
				streams = append(streams, normalized)
			}
		}
	}

	return uniqueStreams(streams)
}

func normalizeStream(value string) string {
	return strings.TrimSpace(value)
}

func uniqueStreams(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
