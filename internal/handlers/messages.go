package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quillchat/quill/internal/models"
	"github.com/quillchat/quill/internal/services"
	appErrors "github.com/quillchat/quill/pkg/errors"
	"github.com/quillchat/quill/pkg/response"
)

// MessageHandler exposes channel history and message posting.
type MessageHandler struct {
	messages *services.MessageService
}

func NewMessageHandler(messages *services.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

type postMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type messageDTO struct {
	ID        string             `json:"id"`
	Content   string             `json:"content"`
	ChannelID string             `json:"channel_id"`
	CreatedAt time.Time          `json:"created_at"`
	User      models.UserSummary `json:"user"`
}

// GET /api/message/:channelId
func (h *MessageHandler) List(c *gin.Context) {
	userID := currentUserID(c)
	channelID := strings.TrimSpace(c.Param("channelId"))
	if channelID == "" {
		response.Error(c, appErrors.NewBadRequest("channel id is required"))
		return
	}

	opts := services.ListMessagesOptions{
		Limit:  parseIntQuery(c, "limit", 0),
		Before: strings.TrimSpace(c.Query("before")),
	}

	messages, err := h.messages.List(requestContext(c), channelID, userID, opts)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]messageDTO, 0, len(messages))
	for i := range messages {
		items = append(items, toMessageDTO(&messages[i]))
	}

	response.Success(c, http.StatusOK, gin.H{"messages": items})
}

// POST /api/message/:channelId
func (h *MessageHandler) Post(c *gin.Context) {
	userID := currentUserID(c)
	channelID := strings.TrimSpace(c.Param("channelId"))
	if channelID == "" {
		response.Error(c, appErrors.NewBadRequest("channel id is required"))
		return
	}

	var req postMessageRequest
	if !bindAndValidate(c, &req) {
		return
	}

	message, err := h.messages.Post(requestContext(c), services.PostMessageInput{
		ChannelID: channelID,
		AuthorID:  userID,
		Content:   req.Content,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": toMessageDTO(message)})
}

func toMessageDTO(message *models.Message) messageDTO {
	dto := messageDTO{
		ID:        message.ID,
		Content:   message.Content,
		ChannelID: message.ChannelID,
		CreatedAt: message.CreatedAt,
	}
	if message.Author != nil {
		dto.User = message.Author.Summary()
	}
	return dto
}
