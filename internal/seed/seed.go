package seed

import (
	"fmt"
	"log"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the database with demo data shaped like a small social
// graph: a known example account, a crowd of fake users, posts for the most
// active users, and a follow mesh dense enough to make feeds interesting.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) (*Seeder, error) {
	factory, err := NewFactory(db)
	if err != nil {
		return nil, err
	}
	return &Seeder{db: db, factory: factory}, nil
}

// ClearAll removes all seeded rows. Follow edges go first so no foreign
// reference survives its endpoints.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, stmt := range []string{
		"DELETE FROM relationships",
		"DELETE FROM posts",
		"DELETE FROM users",
	} {
		if err := s.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("clear data: %w", err)
		}
	}
	return nil
}

// SeedSocialMesh creates numUsers accounts and wires them into a small
// community. The first account is a deterministic admin login
// (example@chirp.dev / password1) for manual poking.
func (s *Seeder) SeedSocialMesh(numUsers, postsPerActiveUser int) ([]models.User, error) {
	if numUsers < 2 {
		numUsers = 2
	}
	if postsPerActiveUser <= 0 {
		postsPerActiveUser = 20
	}

	users := make([]models.User, 0, numUsers)

	example, err := s.factory.CreateUser(func(u *models.User) {
		u.Name = "Example User"
		u.Email = "example@chirp.dev"
		u.Admin = true
	})
	if err != nil {
		return nil, err
	}
	users = append(users, *example)

	for i := 1; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	log.Printf("Created %d users", len(users))

	// Only the most active users post; the rest are lurkers.
	activeCount := len(users) / 6
	if activeCount < 1 {
		activeCount = 1
	}
	postCount := 0
	for i := 0; i < activeCount; i++ {
		for j := 0; j < postsPerActiveUser; j++ {
			if _, err := s.factory.CreatePost(&users[i], 90); err != nil {
				return nil, err
			}
			postCount++
		}
	}
	log.Printf("Created %d posts", postCount)

	if err := s.seedFollowMesh(users); err != nil {
		return nil, err
	}

	log.Println("Database seeding completed")
	return users, nil
}

// seedFollowMesh has the example user follow most of the crowd and a chunk
// of the crowd follow back, mirroring a typical hub-and-spoke community.
func (s *Seeder) seedFollowMesh(users []models.User) error {
	if len(users) < 2 {
		return nil
	}

	example := users[0]
	edges := 0

	followingEnd := len(users) * 3 / 4
	for i := 1; i < followingEnd; i++ {
		if err := s.follow(example.ID, users[i].ID); err != nil {
			return err
		}
		edges++
	}

	followersEnd := len(users) * 2 / 3
	for i := 1; i < followersEnd; i++ {
		if err := s.follow(users[i].ID, example.ID); err != nil {
			return err
		}
		edges++
	}

	log.Printf("Created %d follow edges", edges)
	return nil
}

func (s *Seeder) follow(followerID, followedID uint) error {
	err := s.db.Exec(
		`INSERT INTO relationships (follower_id, followed_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (follower_id, followed_id) DO NOTHING`,
		followerID, followedID,
	).Error
	if err != nil {
		return fmt.Errorf("create follow edge: %w", err)
	}
	return nil
}
