package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/imaaryan1108/consist/internal/models"
)

// ListMilestones returns a user's milestones, newest first. limit <= 0 means all.
func (s *Store) ListMilestones(ctx context.Context, userID uuid.UUID, limit int) ([]models.Milestone, error) {
	var rows []models.Milestone
	q := s.conn(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&rows).Error
	return rows, translate(err)
}

// InsertMilestone fails with ErrDuplicate when the user already holds an award
// with the same dedupe key.
func (s *Store) InsertMilestone(ctx context.Context, m *models.Milestone) error {
	return translate(s.conn(ctx).Create(m).Error)
}
