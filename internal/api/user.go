package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lalith-99/vidstream/internal/middleware"
	"github.com/lalith-99/vidstream/internal/models"
	"go.uber.org/zap"
)

type ProfileReader interface {
	Me(ctx context.Context, requester uuid.UUID) (*models.User, error)
}

type UserHandler struct {
	users  ProfileReader
	logger *zap.Logger
}

func NewUserHandler(users ProfileReader, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// GetMe handles GET /api/v1/users/me
//
// A token whose user has since been removed yields 404, not 500.
func (h *UserHandler) GetMe(c *gin.Context) {
	u, err := h.users.Me(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, u, "Current user fetched successfully")
}
