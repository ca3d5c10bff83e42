package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lalith-99/vidstream/internal/apperr"
	"github.com/lalith-99/vidstream/internal/events"
	"github.com/lalith-99/vidstream/internal/models"
	"github.com/lalith-99/vidstream/internal/repository"
)

type CommentInput struct {
	Content string `json:"content" validate:"notblank"`
}

// CommentService owns comment writes and the per-video comment listing.
type CommentService struct {
	comments repository.CommentRepository
	videos   repository.VideoRepository
	events   events.Publisher
}

// NewCommentService wires the service. A nil pub disables events.
func NewCommentService(comments repository.CommentRepository, videos repository.VideoRepository, pub events.Publisher) *CommentService {
	return &CommentService{comments: comments, videos: videos, events: orNop(pub)}
}

// ListVideoComments returns one page of a video's comments. requester may
// be uuid.Nil.
func (s *CommentService) ListVideoComments(ctx context.Context, requester uuid.UUID, rawVideoID string, page models.PageRequest) (*models.Page[models.CommentView], error) {
	videoID, err := parseID(rawVideoID, "video")
	if err != nil {
		return nil, err
	}
	if err := s.requireVideo(ctx, videoID); err != nil {
		return nil, err
	}

	items, total, err := s.comments.ListByVideo(ctx, videoID, requester, page)
	if err != nil {
		return nil, apperr.Persistence("failed to fetch comments", err)
	}
	result := models.NewPage(items, page, total)
	return &result, nil
}

// AddComment posts a comment on an existing video as the requester and
// publishes comment.created on the video topic.
func (s *CommentService) AddComment(ctx context.Context, requester uuid.UUID, rawVideoID string, in CommentInput) (*models.Comment, error) {
	videoID, err := parseID(rawVideoID, "video")
	if err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	if err := requireIdentity(requester); err != nil {
		return nil, err
	}
	if err := s.requireVideo(ctx, videoID); err != nil {
		return nil, err
	}

	c, err := s.comments.Create(ctx, videoID, requester, in.Content)
	if err != nil {
		return nil, apperr.Persistence("failed to add comment", err)
	}

	s.events.Publish(ctx, events.New(events.CommentCreated, events.VideoTopic(videoID), c.ID, requester, c))
	return c, nil
}

// UpdateComment replaces the content of a comment the requester owns.
func (s *CommentService) UpdateComment(ctx context.Context, requester uuid.UUID, rawCommentID string, in CommentInput) (*models.Comment, error) {
	commentID, err := parseID(rawCommentID, "comment")
	if err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	if _, err := authorizeOwner(ctx, "comment", commentID, requester, s.comments.GetByID,
		"you are not authorized to update this comment"); err != nil {
		return nil, err
	}

	c, err := s.comments.UpdateContent(ctx, commentID, in.Content)
	if err != nil {
		return nil, apperr.Persistence("failed to update comment", err)
	}
	if c == nil {
		return nil, apperr.Persistence("failed to update comment", nil)
	}

	s.events.Publish(ctx, events.New(events.CommentUpdated, events.VideoTopic(c.VideoID), c.ID, requester, c))
	return c, nil
}

// DeleteComment removes a comment the requester owns. A non-owner gets
// Unauthorized and the store is never called.
func (s *CommentService) DeleteComment(ctx context.Context, requester uuid.UUID, rawCommentID string) error {
	commentID, err := parseID(rawCommentID, "comment")
	if err != nil {
		return err
	}
	c, err := authorizeOwner(ctx, "comment", commentID, requester, s.comments.GetByID,
		"you are not authorized to delete this comment")
	if err != nil {
		return err
	}

	deleted, err := s.comments.Delete(ctx, commentID)
	if err != nil {
		return apperr.Persistence("failed to delete comment", err)
	}
	if !deleted {
		return apperr.Persistence("failed to delete comment", nil)
	}

	s.events.Publish(ctx, events.New(events.CommentDeleted, events.VideoTopic(c.VideoID), c.ID, requester, nil))
	return nil
}

func (s *CommentService) requireVideo(ctx context.Context, videoID uuid.UUID) error {
	v, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return apperr.Persistence("failed to load video", err)
	}
	if v == nil {
		return apperr.NotFound("video")
	}
	return nil
}
