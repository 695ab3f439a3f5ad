package models

// CreateURLRequest is the request body for shortening a URL
type CreateURLRequest struct {
	OriginalURL string `json:"originalUrl" binding:"required"`
}
