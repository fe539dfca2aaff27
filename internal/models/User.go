package models

import (
	"context"
	"time"
)

// User is a registered account. Emails are stored lower-cased and trimmed;
// normalization happens in the auth service before the repository is touched.
type User struct {
	ID           string         `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	IsVerified   bool           `gorm:"not null;default:false" json:"isVerified"`
	Favorites    []FavoriteCity `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	CreatedAt    time.Time      `json:"-"`
	UpdatedAt    time.Time      `json:"-"`
}

// FavoriteCity is one saved city name, unique per user.
type FavoriteCity struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	UserID string `gorm:"not null;uniqueIndex:idx_user_city" json:"-"`
	Name   string `gorm:"not null;uniqueIndex:idx_user_city" json:"name"`
}

// UserRepository defines persistence operations for users and their
// favorite cities. Implementations provide atomic per-user read-modify-write
// for the favorites methods.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	MarkVerified(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	AddFavorite(ctx context.Context, userID, city string) ([]FavoriteCity, error)
	ListFavorites(ctx context.Context, userID string) ([]FavoriteCity, error)
	RemoveFavorite(ctx context.Context, userID, city string) ([]FavoriteCity, error)
}
