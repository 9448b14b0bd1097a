package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckIn is one user's daily punch-in. The (user_id, date) index is what
// stops two concurrent requests from both checking in on the same day.
type CheckIn struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_checkin_user_date"`
	Date      string    `json:"date" gorm:"size:10;not null;uniqueIndex:idx_checkin_user_date"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *CheckIn) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
