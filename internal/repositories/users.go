package repositories

import (
	"context"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"iweather/internal/models"
	"iweather/pkg/logger"
)

// OpenSQLite opens (and migrates) the SQLite database at the given path.
// Use ":memory:" for tests.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}

	if err := db.AutoMigrate(&models.User{}, &models.FavoriteCity{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate schema")
	}

	return db, nil
}

// UserRepository is the GORM-backed implementation of models.UserRepository.
type UserRepository struct {
	db *gorm.DB
	l  *logger.Logger
}

func NewUserRepository(db *gorm.DB, l *logger.Logger) *UserRepository {
	return &UserRepository{db: db, l: l}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check existing email")
		}
		if count > 0 {
			return models.ErrEmailTaken
		}
		if err := tx.Create(user).Error; err != nil {
			return errors.Wrap(err, "failed to create user")
		}
		return nil
	})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by id")
	}
	return &user, nil
}

func (r *UserRepository) MarkVerified(ctx context.Context, id string) error {
	return r.updateField(ctx, id, "is_verified", true)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.updateField(ctx, id, "password_hash", passwordHash)
}

func (r *UserRepository) updateField(ctx context.Context, id, column string, value any) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "failed to update %s", column)
	}
	if res.RowsAffected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) AddFavorite(ctx context.Context, userID, city string) ([]models.FavoriteCity, error) {
	var favorites []models.FavoriteCity
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.ensureUser(tx, userID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.FavoriteCity{}).
			Where("user_id = ? AND name = ?", userID, city).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check existing favorite")
		}
		if count > 0 {
			return models.ErrFavoriteExists
		}

		if err := tx.Create(&models.FavoriteCity{UserID: userID, Name: city}).Error; err != nil {
			return errors.Wrap(err, "failed to add favorite")
		}

		return r.listFavorites(tx, userID, &favorites)
	})
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

func (r *UserRepository) ListFavorites(ctx context.Context, userID string) ([]models.FavoriteCity, error) {
	if err := r.ensureUser(r.db.WithContext(ctx), userID); err != nil {
		return nil, err
	}

	var favorites []models.FavoriteCity
	if err := r.listFavorites(r.db.WithContext(ctx), userID, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

func (r *UserRepository) RemoveFavorite(ctx context.Context, userID, city string) ([]models.FavoriteCity, error) {
	var favorites []models.FavoriteCity
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.ensureUser(tx, userID); err != nil {
			return err
		}

		res := tx.Where("user_id = ? AND name = ?", userID, city).Delete(&models.FavoriteCity{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "failed to remove favorite")
		}
		if res.RowsAffected == 0 {
			return models.ErrFavoriteNotFound
		}

		return r.listFavorites(tx, userID, &favorites)
	})
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

func (r *UserRepository) ensureUser(tx *gorm.DB, userID string) error {
	var count int64
	if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to look up user")
	}
	if count == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) listFavorites(tx *gorm.DB, userID string, out *[]models.FavoriteCity) error {
	if err := tx.Where("user_id = ?", userID).Order("id").Find(out).Error; err != nil {
		return errors.Wrap(err, "failed to list favorites")
	}
	if *out == nil {
		*out = []models.FavoriteCity{}
	}
	return nil
}
