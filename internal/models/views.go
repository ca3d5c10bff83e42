package models

import (
	"time"

	"github.com/google/uuid"
)

// Read models. None of these are stored; repositories assemble them with
// joins and aggregates so handlers can return them as-is.

// OwnerProfile is the public-safe projection of a user.
type OwnerProfile struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	AvatarURL string    `json:"avatar"`
}

type CommentView struct {
	ID         uuid.UUID     `json:"id"`
	Content    string        `json:"content"`
	CreatedAt  time.Time     `json:"createdAt"`
	LikesCount int64         `json:"likesCount"`
	IsLiked    bool          `json:"isLiked"`
	Owner      *OwnerProfile `json:"owner"`
}

type TweetView struct {
	ID         uuid.UUID     `json:"id"`
	Content    string        `json:"content"`
	CreatedAt  time.Time     `json:"createdAt"`
	LikesCount int64         `json:"likesCount"`
	IsLiked    bool          `json:"isLiked"`
	Owner      *OwnerProfile `json:"owner"`
}

type PlaylistView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TotalVideos int64     `json:"totalVideos"`
	TotalViews  int64     `json:"totalViews"`
	Thumbnail   string    `json:"thumbnail"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PlaylistDetail is a single playlist with its published member videos.
type PlaylistDetail struct {
	PlaylistView
	Owner  *OwnerProfile  `json:"owner"`
	Videos []ChannelVideo `json:"videos"`
}

// ChannelVideo is the dashboard projection of a video.
type ChannelVideo struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	VideoFile   string    `json:"videoFile"`
	Views       int64     `json:"views"`
	Duration    float64   `json:"duration"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ChannelStats fields are always present; an empty channel reports zeros.
type ChannelStats struct {
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
	TotalViews       int64 `json:"totalViews"`
	TotalVideos      int64 `json:"totalVideos"`
}
