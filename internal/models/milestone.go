package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/imaaryan1108/consist/internal/scoring"
)

// Milestone is an awarded achievement. Rows are never updated or deleted, and
// (UserID, DedupeKey) is unique so concurrent evaluations award once.
type Milestone struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null;uniqueIndex:idx_milestone_user_key"`
	Type        string         `json:"type" gorm:"not null;index"` // weight_milestone, weekly_completion, monthly_consistency, target_achieved
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
	BonusPoints int            `json:"bonusPoints" gorm:"not null;default:0"`
	Metadata    datatypes.JSON `json:"metadata"`
	DedupeKey   string         `json:"-" gorm:"size:64;not null;uniqueIndex:idx_milestone_user_key"`
	CreatedAt   time.Time      `json:"createdAt"`
}

func (m *Milestone) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// NewMilestone builds a row from an evaluator result.
func NewMilestone(userID uuid.UUID, m scoring.Milestone) (Milestone, error) {
	raw, err := scoring.MarshalMetadata(m.Metadata)
	if err != nil {
		return Milestone{}, err
	}
	return Milestone{
		UserID:      userID,
		Type:        string(m.Kind),
		Title:       m.Title,
		Description: m.Description,
		Icon:        m.Icon,
		BonusPoints: m.BonusPoints,
		Metadata:    datatypes.JSON(raw),
		DedupeKey:   m.Key(),
		CreatedAt:   m.CreatedAt,
	}, nil
}

// Scoring decodes the row back into the evaluator's typed form.
func (m Milestone) Scoring() (scoring.Milestone, error) {
	kind := scoring.Kind(m.Type)
	meta, err := scoring.UnmarshalMetadata(kind, m.Metadata)
	if err != nil {
		return scoring.Milestone{}, err
	}
	return scoring.Milestone{
		UserID:      m.UserID.String(),
		Kind:        kind,
		Title:       m.Title,
		Description: m.Description,
		Icon:        m.Icon,
		BonusPoints: m.BonusPoints,
		Metadata:    meta,
		CreatedAt:   m.CreatedAt,
	}, nil
}
