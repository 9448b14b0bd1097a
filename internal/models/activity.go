package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Activity types shown in the circle feed.
const (
	ActivityConsisted          = "consisted"
	ActivityConsistedAfterPush = "consisted_after_push"
	ActivityStreakRecord       = "streak_milestone"
	ActivityPushed             = "pushed"
	ActivityMilestoneEarned    = "milestone_earned"
	ActivityMemberJoined       = "member_joined"
)

type Activity struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	CircleID  uuid.UUID      `json:"circleId" gorm:"type:uuid;index;not null"`
	ActorID   uuid.UUID      `json:"actorId" gorm:"type:uuid;not null"`
	TargetID  *uuid.UUID     `json:"targetId" gorm:"type:uuid"`
	Type      string         `json:"type" gorm:"not null"`
	Metadata  datatypes.JSON `json:"metadata"`
	CreatedAt time.Time      `json:"createdAt"`

	Actor User `json:"actor,omitempty" gorm:"foreignKey:ActorID"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
