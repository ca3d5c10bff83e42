package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lalith-99/vidstream/internal/apperr"
	"go.uber.org/zap"
)

// envelope wraps every successful response.
type envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

type errorEnvelope struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors"`
	Success    bool     `json:"success"`
}

func respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, envelope{StatusCode: status, Data: data, Message: message, Success: true})
}

// respondError maps err to its status code. Server-side failures are
// logged with the underlying cause, which never reaches the client.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	kind := apperr.KindOf(err)
	status := kind.StatusCode()

	message := "internal server error"
	details := []string{}

	var e *apperr.Error
	if errors.As(err, &e) {
		message = e.Message
		if len(e.Details) > 0 {
			details = e.Details
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Error(err),
		)
	}

	c.AbortWithStatusJSON(status, errorEnvelope{
		StatusCode: status,
		Message:    message,
		Errors:     details,
		Success:    false,
	})
}

// bindJSON decodes the request body into dst. Constraint checks happen in
// the service layer so that gate order is the same for every caller.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperr.Validation("invalid request body", err.Error())
	}
	return nil
}

// bindJSONFor checks the path id named by param before decoding the body,
// so a malformed id is reported ahead of a malformed body.
func bindJSONFor(c *gin.Context, param, what string, dst any) error {
	if id, err := uuid.Parse(c.Param(param)); err != nil || id == uuid.Nil {
		return apperr.InvalidIdentifier(what)
	}
	return bindJSON(c, dst)
}
