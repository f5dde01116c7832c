package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RefreshToken stores a hashed refresh token; the raw token never hits the database.
type RefreshToken struct {
	Base
	UserID    uint      `gorm:"not null;index"`
	TokenID   string    `gorm:"size:64;uniqueIndex;not null"`
	TokenHash string    `gorm:"size:255;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Revoked   bool      `gorm:"not null;default:false"`
}

type AccessClaims struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	UserID  uint   `json:"userId"`
	TokenID string `json:"tokenId"`
	jwt.RegisteredClaims
}
