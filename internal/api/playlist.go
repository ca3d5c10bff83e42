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

type PlaylistService interface {
	CreatePlaylist(ctx context.Context, requester uuid.UUID, in service.PlaylistInput) (*models.Playlist, error)
	ListUserPlaylists(ctx context.Context, userID string, page models.PageRequest) (*models.Page[models.PlaylistView], error)
	GetPlaylist(ctx context.Context, playlistID string) (*models.PlaylistDetail, error)
	UpdatePlaylist(ctx context.Context, requester uuid.UUID, playlistID string, in service.PlaylistInput) (*models.Playlist, error)
	DeletePlaylist(ctx context.Context, requester uuid.UUID, playlistID string) error
	AddVideo(ctx context.Context, requester uuid.UUID, playlistID, videoID string) (*models.Playlist, error)
	RemoveVideo(ctx context.Context, requester uuid.UUID, playlistID, videoID string) (*models.Playlist, error)
}

type PlaylistHandler struct {
	playlists PlaylistService
	paging    service.Paging
	logger    *zap.Logger
}

func NewPlaylistHandler(playlists PlaylistService, paging service.Paging, logger *zap.Logger) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists, paging: paging, logger: logger}
}

// Create handles POST /api/v1/playlist
func (h *PlaylistHandler) Create(c *gin.Context) {
	var in service.PlaylistInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, h.logger, err)
		return
	}

	p, err := h.playlists.CreatePlaylist(c.Request.Context(), middleware.GetUserID(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, p, "Playlist created successfully")
}

// ListByUser handles GET /api/v1/playlist/user/:userId
func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	page, err := h.paging.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	res, err := h.playlists.ListUserPlaylists(c.Request.Context(), c.Param("userId"), page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, res, "Playlists fetched successfully")
}

// Get handles GET /api/v1/playlist/:playlistId
func (h *PlaylistHandler) Get(c *gin.Context) {
	d, err := h.playlists.GetPlaylist(c.Request.Context(), c.Param("playlistId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, d, "Playlist fetched successfully")
}

// Update handles PATCH /api/v1/playlist/:playlistId
func (h *PlaylistHandler) Update(c *gin.Context) {
	var in service.PlaylistInput
	if err := bindJSONFor(c, "playlistId", "playlist", &in); err != nil {
		respondError(c, h.logger, err)
		return
	}

	p, err := h.playlists.UpdatePlaylist(c.Request.Context(), middleware.GetUserID(c), c.Param("playlistId"), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, p, "Playlist updated successfully")
}

// Delete handles DELETE /api/v1/playlist/:playlistId
func (h *PlaylistHandler) Delete(c *gin.Context) {
	if err := h.playlists.DeletePlaylist(c.Request.Context(), middleware.GetUserID(c), c.Param("playlistId")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "Playlist deleted successfully")
}

// AddVideo handles PATCH /api/v1/playlist/add/:videoId/:playlistId
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	p, err := h.playlists.AddVideo(c.Request.Context(), middleware.GetUserID(c), c.Param("playlistId"), c.Param("videoId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, p, "Video added to playlist successfully")
}

// RemoveVideo handles PATCH /api/v1/playlist/remove/:videoId/:playlistId
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	p, err := h.playlists.RemoveVideo(c.Request.Context(), middleware.GetUserID(c), c.Param("playlistId"), c.Param("videoId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, p, "Video removed from playlist successfully")
}
