package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/vidstream/internal/service"
	"go.uber.org/zap"
)

type Authenticator interface {
	Signup(ctx context.Context, in service.SignupInput) (*service.Session, error)
	Login(ctx context.Context, in service.LoginInput) (*service.Session, error)
}

// AuthHandler serves the public endpoints that issue tokens. They sit
// outside RequireAuth because the caller has no token yet.
type AuthHandler struct {
	auth   Authenticator
	logger *zap.Logger
}

func NewAuthHandler(auth Authenticator, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// Register handles POST /api/v1/users/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in service.SignupInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, h.logger, err)
		return
	}

	sess, err := h.auth.Signup(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, sess, "User registered successfully")
}

// Login handles POST /api/v1/users/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in service.LoginInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, h.logger, err)
		return
	}

	sess, err := h.auth.Login(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, sess, "User logged in successfully")
}
