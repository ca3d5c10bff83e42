package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lalith-99/vidstream/internal/apperr"
	"github.com/lalith-99/vidstream/internal/events"
	"github.com/lalith-99/vidstream/internal/models"
	"github.com/lalith-99/vidstream/internal/repository"
)

type TweetInput struct {
	Content string `json:"content" validate:"notblank"`
}

// TweetService owns tweet writes and the per-user tweet listing.
type TweetService struct {
	tweets repository.TweetRepository
	users  repository.UserRepository
	events events.Publisher
}

// NewTweetService wires the service. A nil pub disables events.
func NewTweetService(tweets repository.TweetRepository, users repository.UserRepository, pub events.Publisher) *TweetService {
	return &TweetService{tweets: tweets, users: users, events: orNop(pub)}
}

// CreateTweet posts a tweet owned by the requester.
func (s *TweetService) CreateTweet(ctx context.Context, requester uuid.UUID, in TweetInput) (*models.Tweet, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	if err := requireIdentity(requester); err != nil {
		return nil, err
	}

	t, err := s.tweets.Create(ctx, requester, in.Content)
	if err != nil {
		return nil, apperr.Persistence("failed to create tweet", err)
	}

	s.events.Publish(ctx, events.New(events.TweetCreated, events.UserTopic(requester), t.ID, requester, t))
	return t, nil
}

// ListUserTweets pages through a user's tweets, newest first. requester
// only drives isLiked; uuid.Nil lists anonymously.
func (s *TweetService) ListUserTweets(ctx context.Context, requester uuid.UUID, rawUserID string, page models.PageRequest) (*models.Page[models.TweetView], error) {
	userID, err := parseID(rawUserID, "user")
	if err != nil {
		return nil, err
	}
	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}

	items, total, err := s.tweets.ListByOwner(ctx, userID, requester, page)
	if err != nil {
		return nil, apperr.Persistence("failed to fetch tweets", err)
	}
	result := models.NewPage(items, page, total)
	return &result, nil
}

// UpdateTweet replaces the content of a tweet the requester owns.
func (s *TweetService) UpdateTweet(ctx context.Context, requester uuid.UUID, rawTweetID string, in TweetInput) (*models.Tweet, error) {
	tweetID, err := parseID(rawTweetID, "tweet")
	if err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	if _, err := authorizeOwner(ctx, "tweet", tweetID, requester, s.tweets.GetByID,
		"you are not authorized to update this tweet"); err != nil {
		return nil, err
	}

	t, err := s.tweets.UpdateContent(ctx, tweetID, in.Content)
	if err != nil {
		return nil, apperr.Persistence("failed to update tweet", err)
	}
	if t == nil {
		return nil, apperr.Persistence("failed to update tweet", nil)
	}

	s.events.Publish(ctx, events.New(events.TweetUpdated, events.UserTopic(requester), t.ID, requester, t))
	return t, nil
}

// DeleteTweet removes a tweet the requester owns.
func (s *TweetService) DeleteTweet(ctx context.Context, requester uuid.UUID, rawTweetID string) error {
	tweetID, err := parseID(rawTweetID, "tweet")
	if err != nil {
		return err
	}
	if _, err := authorizeOwner(ctx, "tweet", tweetID, requester, s.tweets.GetByID,
		"you are not authorized to delete this tweet"); err != nil {
		return err
	}

	deleted, err := s.tweets.Delete(ctx, tweetID)
	if err != nil {
		return apperr.Persistence("failed to delete tweet", err)
	}
	if !deleted {
		return apperr.Persistence("failed to delete tweet", nil)
	}

	s.events.Publish(ctx, events.New(events.TweetDeleted, events.UserTopic(requester), tweetID, requester, nil))
	return nil
}

func requireUser(ctx context.Context, users repository.UserRepository, userID uuid.UUID) error {
	u, err := users.GetByID(ctx, userID)
	if err != nil {
		return apperr.Persistence("failed to load user", err)
	}
	if u == nil {
		return apperr.NotFound("user")
	}
	return nil
}
