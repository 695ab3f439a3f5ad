package entities

import "time"

// ShortenedURL represents a short URL row in the database
type ShortenedURL struct {
	ID          string        `json:"id"` // UUID
	OriginalURL string        `json:"originalUrl"`
	ShortCode   string        `json:"shortCode"`
	Clicks      int           `json:"clicks"`
	UserID      string        `json:"userId"` // UUID of the owning user
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	User        *OwnerSummary `json:"user,omitempty"`
}
