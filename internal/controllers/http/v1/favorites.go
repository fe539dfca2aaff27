package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"iweather/internal/models"
)

type favoriteRequest struct {
	City string `json:"city" validate:"required"`
}

type favoritesResponse struct {
	Message   string                `json:"mensaje"`
	Favorites []models.FavoriteCity `json:"favorites"`
}

func (r *routes) handleAddFavorite(c *fiber.Ctx) error {
	var req favoriteRequest
	if err := c.BodyParser(&req); err != nil || validate.Struct(req) != nil {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Error en el servidor",
		})
	}

	favorites, err := r.favorites.Add(c.Context(), currentUserID(c), req.City)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrFavoriteExists):
			return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
				Message: "Esa ciudad ya está en tus favoritos",
			})
		case errors.Is(err, models.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(MessageResponse{
				Message: "Usuario no encontrado",
			})
		}
		r.l.Error(err, map[string]any{"route": "favorites.add"})
		return c.Status(fiber.StatusInternalServerError).JSON(MessageResponse{
			Message: "Error en el servidor",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(favoritesResponse{
		Message:   "Ciudad guardada como favorita",
		Favorites: favorites,
	})
}

func (r *routes) handleListFavorites(c *fiber.Ctx) error {
	favorites, err := r.favorites.List(c.Context(), currentUserID(c))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(MessageResponse{
				Message: "Usuario no encontrado",
			})
		}
		r.l.Error(err, map[string]any{"route": "favorites.list"})
		return c.Status(fiber.StatusInternalServerError).JSON(MessageResponse{
			Message: "Error en el servidor",
		})
	}

	return c.JSON(favorites)
}

func (r *routes) handleRemoveFavorite(c *fiber.Ctx) error {
	var req favoriteRequest
	if err := c.BodyParser(&req); err != nil || validate.Struct(req) != nil {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Error en el servidor",
		})
	}

	favorites, err := r.favorites.Remove(c.Context(), currentUserID(c), req.City)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrFavoriteNotFound):
			return c.Status(fiber.StatusNotFound).JSON(MessageResponse{
				Message: "Ciudad no encontrada en favoritos",
			})
		case errors.Is(err, models.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(MessageResponse{
				Message: "Usuario no encontrado",
			})
		}
		r.l.Error(err, map[string]any{"route": "favorites.remove"})
		return c.Status(fiber.StatusInternalServerError).JSON(MessageResponse{
			Message: "Error en el servidor",
		})
	}

	return c.JSON(favoritesResponse{
		Message:   "Favorito eliminado",
		Favorites: favorites,
	})
}
