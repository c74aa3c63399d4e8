package repository

import (
	"context"
	"testing"

	"chirp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationshipRepository_CreateAndStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRelationshipRepository(db)
	ctx := context.Background()

	michael := createTestUser(t, db, "michael")
	archer := createTestUser(t, db, "archer")

	following, err := repo.IsFollowing(ctx, michael.ID, archer.ID)
	require.NoError(t, err)
	assert.False(t, following)

	require.NoError(t, repo.Create(ctx, michael.ID, archer.ID))

	following, err = repo.IsFollowing(ctx, michael.ID, archer.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// The edge is directed; the reverse direction stays unset.
	reverse, err := repo.IsFollowing(ctx, archer.ID, michael.ID)
	require.NoError(t, err)
	assert.False(t, reverse)
}

func TestRelationshipRepository_CreateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRelationshipRepository(db)
	ctx := context.Background()

	michael := createTestUser(t, db, "michael")
	archer := createTestUser(t, db, "archer")

	require.NoError(t, repo.Create(ctx, michael.ID, archer.ID))
	require.NoError(t, repo.Create(ctx, michael.ID, archer.ID))

	var count int64
	require.NoError(t, db.Model(&models.Relationship{}).
		Where("follower_id = ? AND followed_id = ?", michael.ID, archer.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRelationshipRepository_DeleteIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRelationshipRepository(db)
	ctx := context.Background()

	michael := createTestUser(t, db, "michael")
	archer := createTestUser(t, db, "archer")

	require.NoError(t, repo.Create(ctx, michael.ID, archer.ID))
	require.NoError(t, repo.Delete(ctx, michael.ID, archer.ID))

	following, err := repo.IsFollowing(ctx, michael.ID, archer.ID)
	require.NoError(t, err)
	assert.False(t, following)

	// Deleting an edge that is already gone is a no-op, not an error.
	require.NoError(t, repo.Delete(ctx, michael.ID, archer.ID))
}

func TestRelationshipRepository_FollowingAndFollowers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRelationshipRepository(db)
	ctx := context.Background()

	michael := createTestUser(t, db, "michael")
	lana := createTestUser(t, db, "lana")
	malory := createTestUser(t, db, "malory")
	archer := createTestUser(t, db, "archer")

	require.NoError(t, repo.Create(ctx, michael.ID, lana.ID))
	require.NoError(t, repo.Create(ctx, michael.ID, malory.ID))
	require.NoError(t, repo.Create(ctx, archer.ID, michael.ID))

	following, err := repo.Following(ctx, michael.ID, 30, 0)
	require.NoError(t, err)
	names := make([]string, 0, len(following))
	for _, u := range following {
		names = append(names, u.Name)
	}
	assert.ElementsMatch(t, []string{"lana", "malory"}, names)

	count, err := repo.CountFollowing(ctx, michael.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	followers, err := repo.Followers(ctx, michael.ID, 30, 0)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, "archer", followers[0].Name)

	count, err = repo.CountFollowers(ctx, michael.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
