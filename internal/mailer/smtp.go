// Copyright (c) 2026 Majalla. All rights reserved.
// Author: eng@majalla.net

package mailer

import (
	"context"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"

	"github.com/majallahq/majalla/internal/platform/config"
)

// SMTPMailer delivers via an authenticated SMTP relay.
type SMTPMailer struct {
	client *gomail.Client
	from   string
	logger *slog.Logger
}

func NewSMTPMailer(cfg *config.Config, logger *slog.Logger) (*SMTPMailer, error) {
	options := []gomail.Option{
		gomail.WithPort(cfg.SMTPPort),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.SMTPUsername != "" {
		options = append(options,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.SMTPUsername),
			gomail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := gomail.NewClient(cfg.SMTPHost, options...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &SMTPMailer{
		client: client,
		from:   cfg.SMTPFrom,
		logger: logger,
	}, nil
}

func (mailer *SMTPMailer) Send(ctx context.Context, message Message) error {
	body, err := render(message)
	if err != nil {
		return err
	}

	msg := gomail.NewMsg()
	if err := msg.From(mailer.from); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(message.To); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(message.Subject)
	msg.SetBodyString(gomail.TypeTextHTML, body)

	if err := mailer.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	mailer.logger.Info("email_sent",
		slog.String("to", message.To),
		slog.String("subject", message.Subject),
	)
	return nil
}

// LogMailer renders the message and logs it instead of sending. Used when no
// SMTP host is configured.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (mailer *LogMailer) Send(_ context.Context, message Message) error {
	body, err := render(message)
	if err != nil {
		return err
	}

	mailer.logger.Info("email_logged_not_sent",
		slog.String("to", message.To),
		slog.String("subject", message.Subject),
		slog.Int("body_bytes", len(body)),
	)
	return nil
}
