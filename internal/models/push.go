package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Push is a same-day nudge from one circle member to another. Slot numbers a
// sender's pushes for the day from 1; (from_user_id, date, slot) is unique so
// concurrent pushes cannot both take the last slot.
type Push struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	FromUserID uuid.UUID `json:"fromUserId" gorm:"type:uuid;not null;uniqueIndex:idx_push_pair_date;uniqueIndex:idx_push_from_slot;index:idx_push_from_date"`
	ToUserID   uuid.UUID `json:"toUserId" gorm:"type:uuid;not null;uniqueIndex:idx_push_pair_date;index:idx_push_to_date"`
	Date       string    `json:"date" gorm:"size:10;not null;uniqueIndex:idx_push_pair_date;uniqueIndex:idx_push_from_slot;index:idx_push_from_date;index:idx_push_to_date"`
	Slot       int       `json:"slot" gorm:"not null;uniqueIndex:idx_push_from_slot"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (p *Push) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
