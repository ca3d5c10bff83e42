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

type TweetService interface {
	CreateTweet(ctx context.Context, requester uuid.UUID, in service.TweetInput) (*models.Tweet, error)
	ListUserTweets(ctx context.Context, requester uuid.UUID, userID string, page models.PageRequest) (*models.Page[models.TweetView], error)
	UpdateTweet(ctx context.Context, requester uuid.UUID, tweetID string, in service.TweetInput) (*models.Tweet, error)
	DeleteTweet(ctx context.Context, requester uuid.UUID, tweetID string) error
}

type TweetHandler struct {
	tweets TweetService
	paging service.Paging
	logger *zap.Logger
}

func NewTweetHandler(tweets TweetService, paging service.Paging, logger *zap.Logger) *TweetHandler {
	return &TweetHandler{tweets: tweets, paging: paging, logger: logger}
}

// Create handles POST /api/v1/tweets
func (h *TweetHandler) Create(c *gin.Context) {
	var in service.TweetInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, h.logger, err)
		return
	}

	tweet, err := h.tweets.CreateTweet(c.Request.Context(), middleware.GetUserID(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, tweet, "Tweet created successfully")
}

// ListByUser handles GET /api/v1/tweets/user/:userId
func (h *TweetHandler) ListByUser(c *gin.Context) {
	page, err := h.paging.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	res, err := h.tweets.ListUserTweets(c.Request.Context(), middleware.GetUserID(c), c.Param("userId"), page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, res, "Tweets fetched successfully")
}

// Update handles PATCH /api/v1/tweets/:tweetId
func (h *TweetHandler) Update(c *gin.Context) {
	var in service.TweetInput
	if err := bindJSONFor(c, "tweetId", "tweet", &in); err != nil {
		respondError(c, h.logger, err)
		return
	}

	tweet, err := h.tweets.UpdateTweet(c.Request.Context(), middleware.GetUserID(c), c.Param("tweetId"), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, tweet, "Tweet updated successfully")
}

// Delete handles DELETE /api/v1/tweets/:tweetId
func (h *TweetHandler) Delete(c *gin.Context) {
	if err := h.tweets.DeleteTweet(c.Request.Context(), middleware.GetUserID(c), c.Param("tweetId")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "Tweet deleted successfully")
}
