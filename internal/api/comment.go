package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lalith-99/vidstream/internal/middleware"
	"github.com/lalith-99/vidstream/internal/models"
	"github.com/lalith-99/vidstream/internal/service"
	"go.uber.org/zap"
)

type CommentService interface {
	ListVideoComments(ctx context.Context, requester uuid.UUID, videoID string, page models.PageRequest) (*models.Page[models.CommentView], error)
	AddComment(ctx context.Context, requester uuid.UUID, videoID string, in service.CommentInput) (*models.Comment, error)
	UpdateComment(ctx context.Context, requester uuid.UUID, commentID string, in service.CommentInput) (*models.Comment, error)
	DeleteComment(ctx context.Context, requester uuid.UUID, commentID string) error
}

type CommentHandler struct {
	comments CommentService
	paging   service.Paging
	logger   *zap.Logger
}

func NewCommentHandler(comments CommentService, paging service.Paging, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, paging: paging, logger: logger}
}

// List handles GET /api/v1/comments/:videoId?page=1&limit=10
func (h *CommentHandler) List(c *gin.Context) {
	page, err := h.paging.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	res, err := h.comments.ListVideoComments(c.Request.Context(), middleware.GetUserID(c), c.Param("videoId"), page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, res, "Comments fetched successfully")
}

// Create handles POST /api/v1/comments/:videoId
func (h *CommentHandler) Create(c *gin.Context) {
	var in service.CommentInput
	if err := bindJSONFor(c, "videoId", "video", &in); err != nil {
		respondError(c, h.logger, err)
		return
	}

	comment, err := h.comments.AddComment(c.Request.Context(), middleware.GetUserID(c), c.Param("videoId"), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, comment, "Comment added successfully")
}

// Update handles PATCH /api/v1/comments/c/:commentId
func (h *CommentHandler) Update(c *gin.Context) {
	var in service.CommentInput
	if err := bindJSONFor(c, "commentId", "comment", &in); err != nil {
		respondError(c, h.logger, err)
		return
	}

	comment, err := h.comments.UpdateComment(c.Request.Context(), middleware.GetUserID(c), c.Param("commentId"), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, comment, "Comment updated successfully")
}

// Delete handles DELETE /api/v1/comments/c/:commentId
func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.comments.DeleteComment(c.Request.Context(), middleware.GetUserID(c), c.Param("commentId")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "Comment deleted successfully")
}
