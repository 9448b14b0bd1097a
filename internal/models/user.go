package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Email           string         `json:"email" gorm:"uniqueIndex;not null"`
	Password        string         `json:"-"`
	Name            string         `json:"name"`
	CircleID        *uuid.UUID     `json:"circleId" gorm:"type:uuid;index"`
	CurrentStreak   int            `json:"currentStreak" gorm:"not null;default:0"`
	LongestStreak   int            `json:"longestStreak" gorm:"not null;default:0"`
	TotalDays       int            `json:"totalDays" gorm:"not null;default:0"`
	Score           int            `json:"score" gorm:"not null;default:0"`
	LastCheckInDate *string        `json:"lastCheckInDate" gorm:"size:10"`
	FCMToken        string         `json:"-" gorm:"column:fcm_token"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

func (u *User) Level() string {
	switch {
	case u.Score >= 20000:
		return "diamond"
	case u.Score >= 5000:
		return "gold"
	case u.Score >= 1000:
		return "silver"
	default:
		return "bronze"
	}
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Auth DTOs
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name *string `json:"name"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
