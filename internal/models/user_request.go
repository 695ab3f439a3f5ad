package models

import "technext-be/internal/entities"

// CreateUserRequest is the request body for the privileged user creation endpoint
type CreateUserRequest struct {
	Email         string            `json:"email" binding:"required,email"`
	Password      string            `json:"password" binding:"required,min=6"`
	FullName      *string           `json:"fullName"`
	ContactNumber *string           `json:"contactNumber"`
	Address       *string           `json:"address"`
	Country       *string           `json:"country"`
	Role          entities.UserRole `json:"role" binding:"required,oneof=USER ADMIN SUPER_ADMIN BUSINESS_PARTNER"`
}

// UpdateUserRequest carries the patch fields for a profile update. Nil fields
// are left untouched.
type UpdateUserRequest struct {
	FullName      *string `json:"fullName" form:"fullName"`
	ContactNumber *string `json:"contactNumber" form:"contactNumber"`
	Address       *string `json:"address" form:"address"`
	Country       *string `json:"country" form:"country"`
	FcmToken      *string `json:"fcmToken" form:"fcmToken"`
}

// UserFilter holds the listing filters. SearchTerm is matched as a
// case-insensitive substring across the searchable fields; the exact-match
// fields are AND-combined with it.
type UserFilter struct {
	SearchTerm    string
	Email         string
	Country       string
	ContactNumber string
	TimeRange     string // "today", "week" or "month"
}

// PaginationOptions holds page/limit/sort options for list endpoints.
type PaginationOptions struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}
