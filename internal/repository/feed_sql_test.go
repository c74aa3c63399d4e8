package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestFeedQueryShape pins the SQL the feed issues against Postgres: the
// follow set must be a subquery inside the posts query, not a separate
// round trip that materializes followed IDs in the application.
func TestFeedQueryShape(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "posts" WHERE \(user_id = \$1 OR user_id IN \(SELECT followed_id FROM "relationships" WHERE follower_id = \$2\)\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "user_id"}))

	repo := NewPostRepository(db)
	posts, err := repo.Feed(context.Background(), 1, 30, 0)
	require.NoError(t, err)
	require.Empty(t, posts)

	require.NoError(t, mock.ExpectationsWereMet())
}
