package models

import (
	"crypto/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const circleCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Circle is a private group whose members see each other's check-ins.
type Circle struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	Code      string         `json:"code" gorm:"size:6;uniqueIndex;not null"`
	CreatedBy *uuid.UUID     `json:"createdBy" gorm:"type:uuid"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (c *Circle) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Code == "" {
		c.Code = GenerateCircleCode()
	}
	return nil
}

// GenerateCircleCode returns a 6-character join code without look-alike characters.
func GenerateCircleCode() string {
	b := make([]byte, 6)
	rand.Read(b)
	for i := range b {
		b[i] = circleCodeAlphabet[int(b[i])%len(circleCodeAlphabet)]
	}
	return string(b)
}

type CreateCircleRequest struct {
	Name string `json:"name" validate:"required"`
}

type JoinCircleRequest struct {
	Code string `json:"code" validate:"required"`
}

// MemberInfo is a circle member as shown on the dashboard.
type MemberInfo struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	CurrentStreak   int       `json:"currentStreak"`
	LongestStreak   int       `json:"longestStreak"`
	Score           int       `json:"score"`
	LastCheckInDate *string   `json:"lastCheckInDate"`
	CheckedInToday  bool      `json:"checkedInToday"`
}
