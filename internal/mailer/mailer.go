// Package mailer delivers the notification intents the workflow engine
// emits. Delivery is best-effort: a failure is reported to the caller but
// the workflow transition it follows is already durable and stands.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"

	"five-whys-api-server/config"
	"five-whys-api-server/internal/errs"
	"five-whys-api-server/internal/workflow"
)

// Dispatcher sends one notification. Satisfied by *Mailer; tests use a
// recording fake.
type Dispatcher interface {
	Dispatch(ctx context.Context, n workflow.Notification) error
}

// Mailer sends plain-text notifications over SMTP with TLS.
type Mailer struct {
	cfg config.SMTPConfig
}

func New(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Dispatch renders the template for the notification kind and sends it to
// every recipient in one message. No retries.
func (m *Mailer) Dispatch(ctx context.Context, n workflow.Notification) error {
	subject, body := m.render(n)

	msg := mail.NewMsg()
	if err := msg.FromFormat(m.cfg.FromName, m.cfg.From); err != nil {
		return errs.Transport(err, "invalid sender address")
	}
	if err := msg.To(n.Recipients...); err != nil {
		return errs.Transport(err, "invalid recipient address")
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
	)
	if err != nil {
		return errs.Transport(err, "smtp client setup failed")
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return errs.Transport(err, "e-mail delivery failed")
	}

	slog.Info("notification sent",
		"kind", n.Kind.String(),
		"document", n.DocumentKey,
		"recipients", len(n.Recipients),
	)
	return nil
}

// render selects subject and body. The wording is the one plant staff
// already know from the previous system.
func (m *Mailer) render(n workflow.Notification) (subject, body string) {
	signature := fmt.Sprintf("\n\nAtenciosamente,\n%s", m.cfg.FromName)

	switch n.Kind {
	case workflow.NotifySubmitted:
		subject = fmt.Sprintf("Gerado 5-Porques %s", n.DocumentKey)
		body = fmt.Sprintf("Ola, foi gerado um novo 5-Porques, acesse a plataforma para avaliar.\n%s%s",
			m.cfg.AppURL, signature)
	case workflow.NotifyRectified:
		subject = fmt.Sprintf("Retificado 5-Porques %s", n.DocumentKey)
		body = fmt.Sprintf("Ola, o responsavel retificou o 5-Porques, acesse a plataforma para reavaliar.\n%s%s",
			m.cfg.AppURL, signature)
	case workflow.NotifyApproved:
		subject = fmt.Sprintf("Aprovado 5-Porques %s", n.DocumentKey)
		body = fmt.Sprintf("Ola, o gestor aprovou o 5-Porques.\n\n%s%s", n.Comment, signature)
	case workflow.NotifyRejected:
		subject = fmt.Sprintf("Reprovado 5-Porques %s", n.DocumentKey)
		body = fmt.Sprintf("Ola, o gestor reprovou o 5-Porques, acesse a plataforma para retificar.\n%s\n\nComentario do gestor:\n\n%s%s",
			m.cfg.AppURL, n.Comment, signature)
	}
	return subject, body
}
