package http

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"iweather/internal/services/auth"
	"iweather/internal/services/favorites"
	"iweather/internal/services/weather"
	"iweather/pkg/logger"
)

var validate = validator.New()

type routes struct {
	auth      *auth.Service
	weather   *weather.Service
	favorites *favorites.Service
	l         *logger.Logger
}

func NewRouter(
	app *fiber.App,
	authService *auth.Service,
	weatherService *weather.Service,
	favoritesService *favorites.Service,
	l *logger.Logger,
) {
	r := &routes{
		auth:      authService,
		weather:   weatherService,
		favorites: favoritesService,
		l:         l,
	}

	// Swagger documentation
	app.Get("/swagger/doc.json", func(c *fiber.Ctx) error {
		swaggerData, err := os.ReadFile("docs/swagger.json")
		if err != nil {
			return c.Status(fiber.ErrInternalServerError.Code).JSON(fiber.Map{"error": "Failed to read Swagger documentation"})
		}

		c.Set("Content-Type", "application/json")
		return c.Send(swaggerData)
	})

	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(MessageResponse{Message: "¡Hola Mundo desde el Backend!"})
	})

	api := app.Group("/api")

	api.Post("/register", r.handleRegister)
	api.Post("/login", r.handleLogin)
	api.Post("/verify-email", r.handleVerifyEmail)
	api.Post("/auth/google", r.handleGoogleLogin)
	api.Post("/forgot-password", r.handleForgotPassword)
	api.Post("/reset-password", r.handleResetPassword)

	api.Post("/favorites", r.requireAuth, r.handleAddFavorite)
	api.Get("/favorites", r.requireAuth, r.handleListFavorites)
	api.Delete("/favorites", r.requireAuth, r.handleRemoveFavorite)

	api.Get("/weather", r.handleWeatherByCity)
	api.Get("/weather-by-coords", r.handleWeatherByCoords)
}
