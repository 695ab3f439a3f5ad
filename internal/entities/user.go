package entities

import "time"

// UserRole enumerates the account roles.
type UserRole string

const (
	RoleUser            UserRole = "USER"
	RoleAdmin           UserRole = "ADMIN"
	RoleSuperAdmin      UserRole = "SUPER_ADMIN"
	RoleBusinessPartner UserRole = "BUSINESS_PARTNER"
)

// UserStatus enumerates the account lifecycle states. Accounts are never
// physically deleted; deactivation flips the status to INACTIVE.
type UserStatus string

const (
	StatusActive   UserStatus = "ACTIVE"
	StatusInactive UserStatus = "INACTIVE"
)

// User represents a user row in the database
type User struct {
	ID            string     `json:"id"` // UUID
	Email         string     `json:"email"`
	Password      string     `json:"-"` // bcrypt hash, never exposed in JSON
	FullName      *string    `json:"fullName,omitempty"`
	ProfileImage  *string    `json:"profileImage,omitempty"`
	ContactNumber *string    `json:"contactNumber,omitempty"`
	Address       *string    `json:"address,omitempty"`
	Country       *string    `json:"country,omitempty"`
	Role          UserRole   `json:"role"`
	Status        UserStatus `json:"status"`
	FcmToken      *string    `json:"fcmToken,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// OwnerSummary is the minimal owner projection joined onto short URL rows.
type OwnerSummary struct {
	ID       string  `json:"id"`
	FullName *string `json:"fullName"`
	Email    string  `json:"email"`
}
