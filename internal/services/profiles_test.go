package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartlist/internal/models"
)

func TestProfileGetBeforeSetup(t *testing.T) {
	e := newEnv()
	user := e.user("alice", "alice@example.com")

	u, profile, err := e.profiles.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Nil(t, profile)
}

func TestProfileUpsertCreatesThenUpdates(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	user := e.user("alice", "alice@example.com")

	created, err := e.profiles.Upsert(ctx, user.ID, models.UpsertProfileRequest{
		Name:               "Alice",
		Theme:              "light",
		DietaryPreferences: []string{"vegetariana"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", created.Name)

	photo := "abc123"
	_, err = e.profiles.Upsert(ctx, user.ID, models.UpsertProfileRequest{
		Name:     "Alice",
		Theme:    "dark",
		PhotoRef: &photo,
	})
	require.NoError(t, err)

	// An absent photo reference keeps the stored one.
	updated, err := e.profiles.Upsert(ctx, user.ID, models.UpsertProfileRequest{Name: "Alice", Theme: "dark"})
	require.NoError(t, err)
	require.NotNil(t, updated.PhotoRef)
	assert.Equal(t, "abc123", *updated.PhotoRef)
	assert.Empty(t, updated.DietaryPreferences)
}

func TestProfileGetUnknownUser(t *testing.T) {
	e := newEnv()

	_, _, err := e.profiles.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
