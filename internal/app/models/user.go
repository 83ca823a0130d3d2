package models

import (
	"time"
)

// User defines the user model based on the 'users' table. Credential
// handling belongs to the identity provider; the portal only reads the
// identity and role.
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Email     string    `json:"email" db:"email" example:"student@portal.edu"`
	FirstName string    `json:"firstName" db:"first_name" example:"Amina"`
	LastName  string    `json:"lastName" db:"last_name" example:"Hassan"`
	RoleType  RoleType  `json:"roleType" db:"role_type" example:"STUDENT"`
	IsActive  bool      `json:"isActive" db:"is_active" example:"true"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
}
