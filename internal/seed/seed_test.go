package seed

import (
	"context"
	"testing"
	"unicode/utf8"

	"chirp/internal/models"
	"chirp/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Relationship{}))
	return db
}

func TestSeedSocialMesh(t *testing.T) {
	db := setupSeedDB(t)
	seeder, err := NewSeeder(db)
	require.NoError(t, err)

	users, err := seeder.SeedSocialMesh(12, 5)
	require.NoError(t, err)
	require.Len(t, users, 12)

	// The deterministic dev login is first and is an admin.
	assert.Equal(t, "example@chirp.dev", users[0].Email)
	assert.True(t, users[0].Admin)

	var userCount, postCount, edgeCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	require.NoError(t, db.Model(&models.Relationship{}).Count(&edgeCount).Error)
	assert.Equal(t, int64(12), userCount)
	assert.Equal(t, int64(10), postCount) // 12/6 = 2 active users, 5 posts each
	assert.Greater(t, edgeCount, int64(0))

	// Every generated post respects the content limit.
	var posts []models.Post
	require.NoError(t, db.Find(&posts).Error)
	for _, p := range posts {
		assert.LessOrEqual(t, utf8.RuneCountInString(p.Content), models.MaxPostContentLen)
		assert.NotEmpty(t, p.Content)
	}

	// The mesh gives the example user a non-trivial feed.
	feed, err := repository.NewPostRepository(db).Feed(context.Background(), users[0].ID, 30, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, feed)
}

func TestClearAll(t *testing.T) {
	db := setupSeedDB(t)
	seeder, err := NewSeeder(db)
	require.NoError(t, err)

	_, err = seeder.SeedSocialMesh(6, 2)
	require.NoError(t, err)
	require.NoError(t, seeder.ClearAll())

	var userCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	assert.Equal(t, int64(0), userCount)
}
