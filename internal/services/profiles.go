package services

import (
	"context"

	"smartlist/internal/models"
	"smartlist/internal/store"
)

// ProfileService serves the 1:1 user profile. The photo reference is an
// opaque handle issued by the storage handshake; the profile only stores it.
type ProfileService struct {
	users    store.UserStore
	profiles store.ProfileStore
}

func NewProfileService(users store.UserStore, profiles store.ProfileStore) *ProfileService {
	return &ProfileService{users: users, profiles: profiles}
}

// Get returns the user and their profile; the profile is nil until first
// setup.
func (s *ProfileService) Get(ctx context.Context, userID int) (*models.User, *models.UserProfile, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrNotFound
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, profile, nil
}

// Upsert patches the existing profile or creates one. An absent photo
// reference keeps the stored one.
func (s *ProfileService) Upsert(ctx context.Context, userID int, req models.UpsertProfileRequest) (*models.UserProfile, error) {
	prefs := req.DietaryPreferences
	if prefs == nil {
		prefs = []string{}
	}

	return s.profiles.UpsertProfile(ctx, &models.UserProfile{
		UserID:             userID,
		Name:               req.Name,
		PhotoRef:           req.PhotoRef,
		DietaryPreferences: prefs,
		Theme:              req.Theme,
	})
}
