package models

import "technext-be/internal/entities"

// ListMeta describes one page of a listing
type ListMeta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// UserListResponse is the envelope data for the user listing endpoint
type UserListResponse struct {
	Meta ListMeta         `json:"meta"`
	Data []*entities.User `json:"data"`
}
