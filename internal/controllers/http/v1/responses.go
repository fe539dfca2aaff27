package http

// MessageResponse is the generic message body every non-payload response
// uses.
type MessageResponse struct {
	Message string `json:"mensaje" example:"Error en el servidor"`
}

// TokenResponse is the login/external-login success body.
type TokenResponse struct {
	Token string `json:"token"`
	Email string `json:"email" example:"user@example.com"`
}
