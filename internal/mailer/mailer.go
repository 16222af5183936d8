// Package mailer sends rendered documents as email attachments over SMTP.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/smallbiznis/docbill/internal/config"
	"github.com/smallbiznis/docbill/internal/observability/logger"
)

// Message is one outbound document email.
type Message struct {
	To            string
	Subject       string
	HTMLBody      string
	AttachmentPDF []byte
	Filename      string
}

// Mailer delivers document emails. Delivery failures surface to the
// caller; nothing is queued or retried.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

var (
	ErrMissingRecipient   = errors.New("missing_recipient")
	ErrMailerUnconfigured = errors.New("mailer_unconfigured")
)

type MailerParam struct {
	fx.In

	Cfg config.Config
	Log *zap.Logger
}

// SMTPMailer sends through a single SMTP account, SSL on port 465 to
// match the app-password Gmail setup the tool historically used.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	log    *zap.Logger
}

func NewSMTPMailer(p MailerParam) Mailer {
	dialer := gomail.NewDialer(p.Cfg.SMTP.Host, p.Cfg.SMTP.Port, p.Cfg.SMTP.FromEmail, p.Cfg.SMTP.AppPassword)
	dialer.SSL = p.Cfg.SMTP.Port == 465
	log := p.Log.Named("mailer")
	log.Info("smtp configured",
		zap.String("host", p.Cfg.SMTP.Host),
		zap.Int("port", p.Cfg.SMTP.Port),
		zap.String("from", p.Cfg.SMTP.FromEmail),
		zap.String("app_password", logger.MaskSMTPPassword(p.Cfg.SMTP.AppPassword)),
	)
	return &SMTPMailer{
		dialer: dialer,
		from:   p.Cfg.SMTP.FromEmail,
		log:    log,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if m.from == "" {
		return ErrMailerUnconfigured
	}
	to := strings.TrimSpace(msg.To)
	if to == "" {
		return ErrMissingRecipient
	}

	mail := gomail.NewMessage()
	mail.SetHeader("From", m.from)
	mail.SetHeader("To", to)
	mail.SetHeader("Subject", msg.Subject)
	mail.SetBody("text/html", msg.HTMLBody)
	if len(msg.AttachmentPDF) > 0 {
		mail.Attach(msg.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(msg.AttachmentPDF)
				return err
			}),
			gomail.SetHeader(map[string][]string{
				"Content-Type": {"application/pdf"},
			}),
		)
	}

	if err := m.dialer.DialAndSend(mail); err != nil {
		m.log.Error("send failed",
			zap.String("to", to),
			zap.String("filename", msg.Filename),
			zap.Error(err),
		)
		return fmt.Errorf("send mail: %w", err)
	}

	m.log.Info("document emailed",
		zap.String("to", to),
		zap.String("filename", msg.Filename),
	)
	return nil
}
