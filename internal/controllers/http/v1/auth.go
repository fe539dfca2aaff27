package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"iweather/internal/models"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type googleLoginRequest struct {
	Credential string `json:"credential" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

type resetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// handleRegister godoc
// @Summary Register a new account
// @Description Creates an unverified account and sends a verification email
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "Credentials"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /api/register [post]
func (r *routes) handleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil || validate.Struct(req) != nil {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Email y contraseña son obligatorios",
		})
	}

	if err := r.auth.Register(c.Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
				Message: "Este email ya está registrado",
			})
		}
		if errors.Is(err, models.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
				Message: "Email y contraseña son obligatorios",
			})
		}
		r.l.Error(err, map[string]any{"route": "register"})
		return c.Status(fiber.StatusInternalServerError).JSON(MessageResponse{
			Message: "Error en el servidor",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(MessageResponse{
		Message: "Usuario registrado. ¡Por favor, revisa tu email para verificar tu cuenta!",
	})
}

// handleLogin godoc
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} MessageResponse
// @Router /api/login [post]
func (r *routes) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil || validate.Struct(req) != nil {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Email y contraseña son obligatorios",
		})
	}

	token, email, err := r.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) || errors.Is(err, models.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
				Message: "Credenciales inválidas",
			})
		}
		r.l.Error(err, map[string]any{"route": "login"})
		return c.Status(fiber.StatusInternalServerError).JSON(MessageResponse{
			Message: "Error en el servidor",
		})
	}

	return c.JSON(TokenResponse{Token: token, Email: email})
}

func (r *routes) handleVerifyEmail(c *fiber.Ctx) error {
	var req tokenRequest
	if err := c.BodyParser(&req); err != nil || validate.Struct(req) != nil {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "No se proporcionó token.",
		})
	}

	if err := r.auth.VerifyEmail(c.Context(), req.Token); err != nil {
		switch {
		case errors.Is(err, models.ErrTokenInvalid), errors.Is(err, models.ErrTokenExpired):
			return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
				Message: "El token es inválido o ha expirado.",
			})
		case errors.Is(err, models.ErrUserNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
				Message: "Usuario no encontrado.",
			})
		}
		r.l.Error(err, map[string]any{"route": "verify-email"})
		return c.Status(fiber.StatusInternalServerError).JSON(MessageResponse{
			Message: "Error en el servidor",
		})
	}

	return c.JSON(MessageResponse{
		Message: "¡Cuenta verificada exitosamente! Ya puedes iniciar sesión.",
	})
}

func (r *routes) handleGoogleLogin(c *fiber.Ctx) error {
	var req googleLoginRequest
	if err := c.BodyParser(&req); err != nil || validate.Struct(req) != nil {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Error al obtener email de Google",
		})
	}

	token, email, err := r.auth.ExternalLogin(c.Context(), req.Credential)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
				Message: "Error al obtener email de Google",
			})
		}
		r.l.Error(err, map[string]any{"route": "auth/google"})
		return c.Status(fiber.StatusInternalServerError).JSON(MessageResponse{
			Message: "Error en el servidor",
		})
	}

	return c.JSON(TokenResponse{Token: token, Email: email})
}

// handleForgotPassword always answers the same generic message so the
// endpoint cannot be used to enumerate accounts.
func (r *routes) handleForgotPassword(c *fiber.Ctx) error {
	const genericMessage = "Si existe una cuenta con este email, se ha enviado un enlace de recuperación."

	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil || validate.Struct(req) != nil {
		return c.JSON(MessageResponse{Message: genericMessage})
	}

	if err := r.auth.ForgotPassword(c.Context(), req.Email); err != nil {
		r.l.Error(err, map[string]any{"route": "forgot-password"})
		return c.Status(fiber.StatusInternalServerError).JSON(MessageResponse{
			Message: "Error en el servidor",
		})
	}

	return c.JSON(MessageResponse{Message: genericMessage})
}

func (r *routes) handleResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil || validate.Struct(req) != nil {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Token y nueva contraseña son obligatorios.",
		})
	}

	if err := r.auth.ResetPassword(c.Context(), req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, models.ErrTokenInvalid), errors.Is(err, models.ErrTokenExpired):
			return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
				Message: "El token es inválido o ha expirado.",
			})
		case errors.Is(err, models.ErrUserNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
				Message: "Usuario no encontrado.",
			})
		}
		r.l.Error(err, map[string]any{"route": "reset-password"})
		return c.Status(fiber.StatusInternalServerError).JSON(MessageResponse{
			Message: "Error en el servidor",
		})
	}

	return c.JSON(MessageResponse{
		Message: "¡Contraseña actualizada exitosamente! Ya puedes iniciar sesión.",
	})
}
