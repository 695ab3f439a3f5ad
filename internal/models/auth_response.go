package models

import "technext-be/internal/entities"

// LoginResponse carries the authenticated user and their session token
type LoginResponse struct {
	User  *entities.User `json:"user"`
	Token string         `json:"token"`
}
