package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User mirrors an identity-provider account. ID is the provider subject.
type User struct {
	ID         string    `gorm:"primaryKey;size:128" json:"id"`
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`
	Name       string    `gorm:"not null" json:"name"`
	PhotoURL   string    `json:"photo_url"`
	Role       string    `gorm:"size:20;default:'user';not null" json:"role"` // user, admin
	IsBlocked  bool      `gorm:"default:false" json:"is_blocked"`
	IsVerified bool      `gorm:"default:false" json:"is_verified"` // verified author
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
