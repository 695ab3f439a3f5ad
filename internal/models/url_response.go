package models

import "technext-be/internal/entities"

// ShortURLResponse is a short URL row plus its fully-qualified short link
type ShortURLResponse struct {
	entities.ShortenedURL
	ShortURL string `json:"shortUrl"`
}

// UserURLsResponse is the paginated listing of a user's URLs
type UserURLsResponse struct {
	Urls       []*ShortURLResponse `json:"urls"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"totalPages"`
}
