package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/imaaryan1108/consist/internal/models"
	"github.com/imaaryan1108/consist/internal/store"
)

// feed writes circle activity and fans it out to live subscribers.
type feed struct {
	store     *store.Store
	publisher Publisher
}

func (f feed) record(ctx context.Context, circleID, actorID uuid.UUID, targetID *uuid.UUID, kind, event string, metadata map[string]interface{}) error {
	a := models.Activity{
		CircleID: circleID,
		ActorID:  actorID,
		TargetID: targetID,
		Type:     kind,
	}
	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("encode activity metadata: %w", err)
		}
		a.Metadata = datatypes.JSON(raw)
	}
	if err := f.store.CreateActivity(ctx, &a); err != nil {
		return fmt.Errorf("create activity: %w", err)
	}

	f.publisher.Publish(circleID, actorID, Event{
		Type:     event,
		CircleID: circleID.String(),
		UserID:   actorID.String(),
		Data:     a,
	})
	return nil
}
