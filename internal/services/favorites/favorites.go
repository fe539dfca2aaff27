package favorites

import (
	"context"
	"strings"

	"iweather/internal/models"
	"iweather/pkg/logger"
)

// Service manages a user's favorite-city set. Conflict and not-found
// failures leave the stored set unchanged; the repository guarantees
// atomicity per user.
type Service struct {
	users models.UserRepository
	l     *logger.Logger
}

func NewService(users models.UserRepository, l *logger.Logger) *Service {
	return &Service{users: users, l: l}
}

func (s *Service) Add(ctx context.Context, userID, city string) ([]models.FavoriteCity, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, models.ErrValidation
	}

	favorites, err := s.users.AddFavorite(ctx, userID, city)
	if err != nil {
		return nil, err
	}

	s.l.Info("favorite added", map[string]any{"userId": userID, "city": city})
	return favorites, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]models.FavoriteCity, error) {
	return s.users.ListFavorites(ctx, userID)
}

func (s *Service) Remove(ctx context.Context, userID, city string) ([]models.FavoriteCity, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, models.ErrValidation
	}

	favorites, err := s.users.RemoveFavorite(ctx, userID, city)
	if err != nil {
		return nil, err
	}

	s.l.Info("favorite removed", map[string]any{"userId": userID, "city": city})
	return favorites, nil
}
