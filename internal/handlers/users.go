package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/quillchat/quill/internal/models"
	"github.com/quillchat/quill/internal/services"
	appErrors "github.com/quillchat/quill/pkg/errors"
	"github.com/quillchat/quill/pkg/response"
)

const maxUserSearchResults = 20

// UserHandler serves the account search used by the invite picker.
type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// GET /api/users/search?q=
func (h *UserHandler) Search(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		response.Success(c, http.StatusOK, gin.H{"users": []models.UserSummary{}})
		return
	}

	users, err := h.users.Search(requestContext(c), query, maxUserSearchResults+1)
	if err != nil {
		response.Error(c, err)
		return
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		if users[i].ID == userID {
			continue
		}
		if len(summaries) == maxUserSearchResults {
			break
		}
		summaries = append(summaries, users[i].Summary())
	}

	response.Success(c, http.StatusOK, gin.H{"users": summaries})
}
