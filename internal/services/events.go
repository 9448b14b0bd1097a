package services

import (
	"github.com/google/uuid"
)

// Realtime event types sent to circle subscribers.
const (
	EventCheckedIn       = "checked_in"
	EventPushed          = "pushed"
	EventMilestoneEarned = "milestone_earned"
	EventMemberJoined    = "member_joined"
)

// Event is the JSON message fanned out to a circle.
type Event struct {
	Type     string      `json:"type"`
	CircleID string      `json:"circleId"`
	UserID   string      `json:"userId"`
	Data     interface{} `json:"data,omitempty"`
}

// Publisher delivers events to a circle's live subscribers. Implementations
// must not block the caller.
type Publisher interface {
	Publish(circleID, excludeUserID uuid.UUID, event Event)
}

type NopPublisher struct{}

func (NopPublisher) Publish(uuid.UUID, uuid.UUID, Event) {}
