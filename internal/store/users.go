package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/imaaryan1108/consist/internal/models"
)

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return translate(s.conn(ctx).Create(u).Error)
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := s.conn(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.conn(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) UpdateUserName(ctx context.Context, id uuid.UUID, name string) error {
	return translate(s.conn(ctx).Model(&models.User{}).Where("id = ?", id).Update("name", name).Error)
}

func (s *Store) SetFCMToken(ctx context.Context, id uuid.UUID, token string) error {
	return translate(s.conn(ctx).Model(&models.User{}).Where("id = ?", id).Update("fcm_token", token).Error)
}

func (s *Store) SetUserCircle(ctx context.Context, id uuid.UUID, circleID uuid.UUID) error {
	res := s.conn(ctx).Model(&models.User{}).Where("id = ?", id).Update("circle_id", circleID)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CircleMembers lists a circle's members, longest current streak first.
func (s *Store) CircleMembers(ctx context.Context, circleID uuid.UUID) ([]models.User, error) {
	var users []models.User
	err := s.conn(ctx).
		Where("circle_id = ?", circleID).
		Order("current_streak DESC").
		Order("name ASC").
		Find(&users).Error
	return users, translate(err)
}

func (s *Store) CreateCircle(ctx context.Context, c *models.Circle) error {
	return translate(s.conn(ctx).Create(c).Error)
}

func (s *Store) GetCircle(ctx context.Context, id uuid.UUID) (*models.Circle, error) {
	var c models.Circle
	if err := s.conn(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *Store) GetCircleByCode(ctx context.Context, code string) (*models.Circle, error) {
	var c models.Circle
	if err := s.conn(ctx).Where("code = ?", code).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}
