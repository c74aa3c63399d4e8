// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"chirp/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	// One digest shared by all seed users; hashing per user makes large
	// seeds painfully slow.
	passwordDigest string
	rng            *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB. Every
// seeded user gets the password "password1".
func NewFactory(db *gorm.DB) (*Factory, error) {
	gofakeit.Seed(time.Now().UnixNano())

	digest, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	return &Factory{
		db:             db,
		passwordDigest: string(digest),
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// CreateUser persists a fake user. Overrides run before the insert.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	name := gofakeit.Name()
	user := &models.User{
		Name: name,
		Email: strings.ToLower(fmt.Sprintf("%s-%d@example.org",
			strings.ReplaceAll(name, " ", "."), f.rng.Intn(1_000_000))),
		PasswordDigest: f.passwordDigest,
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create seed user: %w", err)
	}
	return user, nil
}

// CreatePost persists a fake post for the user with a creation time spread
// over the past maxDays days.
func (f *Factory) CreatePost(user *models.User, maxDays int, overrides ...func(*models.Post)) (*models.Post, error) {
	if maxDays <= 0 {
		maxDays = 90
	}

	post := &models.Post{
		Content: clampContent(gofakeit.Sentence(8)),
		UserID:  user.ID,
		CreatedAt: time.Now().
			Add(-time.Duration(f.rng.Intn(maxDays*24)) * time.Hour).
			Add(-time.Duration(f.rng.Intn(60)) * time.Minute),
	}
	for _, override := range overrides {
		override(post)
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, fmt.Errorf("create seed post: %w", err)
	}
	return post, nil
}

// clampContent trims generated text to the post length limit.
func clampContent(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= models.MaxPostContentLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:models.MaxPostContentLen])
}
