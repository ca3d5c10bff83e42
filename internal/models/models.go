package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Every user is also a channel: the videos
// they own and the subscriptions pointing at them belong to that channel.
type User struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	AvatarURL     string    `json:"avatar"`
	CoverImageURL string    `json:"coverImage"`
	PasswordHash  string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Video is read-only from this service's point of view. Uploading and
// publishing happen elsewhere.
type Video struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoFileURL string    `json:"videoFile"`
	ThumbnailURL string    `json:"thumbnail"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	IsPublished  bool      `json:"isPublished"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Comment struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	VideoID   uuid.UUID `json:"video"`
	OwnerID   uuid.UUID `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Comment) OwnedBy() uuid.UUID { return c.OwnerID }

type Tweet struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	OwnerID   uuid.UUID `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *Tweet) OwnedBy() uuid.UUID { return t.OwnerID }

// Playlist keeps its member videos in insertion order. A video appears at
// most once; the playlist_videos primary key enforces it.
type Playlist struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	OwnerID     uuid.UUID   `json:"owner"`
	Videos      []uuid.UUID `json:"videos"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (p *Playlist) OwnedBy() uuid.UUID { return p.OwnerID }
