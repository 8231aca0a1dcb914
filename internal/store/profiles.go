package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"smartlist/internal/database"
	"smartlist/internal/models"
)

type pgProfileStore struct {
	db *database.DB
}

func (s *pgProfileStore) GetProfile(ctx context.Context, userID int) (*models.UserProfile, error) {
	var p models.UserProfile
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, name, photo_ref, dietary_preferences, theme
		 FROM user_profiles WHERE user_id = $1`,
		userID).Scan(&p.ID, &p.UserID, &p.Name, &p.PhotoRef, &p.DietaryPreferences, &p.Theme)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *pgProfileStore) UpsertProfile(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error) {
	var p models.UserProfile
	err := s.db.QueryRow(ctx,
		`INSERT INTO user_profiles (user_id, name, photo_ref, dietary_preferences, theme)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id) DO UPDATE SET
		   name = EXCLUDED.name,
		   photo_ref = COALESCE(EXCLUDED.photo_ref, user_profiles.photo_ref),
		   dietary_preferences = EXCLUDED.dietary_preferences,
		   theme = EXCLUDED.theme
		 RETURNING id, user_id, name, photo_ref, dietary_preferences, theme`,
		profile.UserID, profile.Name, profile.PhotoRef, profile.DietaryPreferences, profile.Theme).Scan(
		&p.ID, &p.UserID, &p.Name, &p.PhotoRef, &p.DietaryPreferences, &p.Theme)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
