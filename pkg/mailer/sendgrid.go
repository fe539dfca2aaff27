package mailer

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer delivers the account mails through the SendGrid API.
type SendGridMailer struct {
	client *sendgrid.Client
	from   *mail.Email
}

func NewSendGridMailer(apiKey, fromAddress string) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail("App del Clima", fromAddress),
	}
}

func (m *SendGridMailer) SendVerification(ctx context.Context, to, link string) error {
	html := fmt.Sprintf(`<h1>¡Bienvenido a la App del Clima!</h1>
<p>Por favor, haz clic en el siguiente enlace para verificar tu cuenta:</p>
<a href="%s">Verificar mi cuenta</a>
<p>Este enlace expirará en 15 minutos.</p>`, link)

	return m.send(ctx, to, "¡Verifica tu cuenta en la App del Clima!", html)
}

func (m *SendGridMailer) SendPasswordReset(ctx context.Context, to, link string) error {
	html := fmt.Sprintf(`<h1>¿Olvidaste tu contraseña?</h1>
<p>Recibimos una solicitud para restablecer tu contraseña. Haz clic en el siguiente enlace:</p>
<a href="%s">Restablecer mi contraseña</a>
<p>Este enlace expirará en 10 minutos.</p>`, link)

	return m.send(ctx, to, "Restablecimiento de contraseña de iWeather", html)
}

func (m *SendGridMailer) send(ctx context.Context, to, subject, html string) error {
	msg := mail.NewSingleEmail(m.from, subject, mail.NewEmail("", to), "", html)

	resp, err := m.client.SendWithContext(ctx, msg)
	if err != nil {
		return errors.Wrap(err, "failed to send email")
	}
	if resp.StatusCode >= 400 {
		return errors.Errorf("sendgrid rejected the message (status %d): %s", resp.StatusCode, resp.Body)
	}

	return nil
}
