package email

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Dialer is the part of *gomail.Dialer used by SMTPSender.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPSender struct {
	dialer  Dialer
	from    string
	replyTo string
}

type SMTPOption func(*SMTPSender)

// WithDialer replaces the network dialer, mostly for tests.
func WithDialer(d Dialer) SMTPOption {
	return func(s *SMTPSender) {
		if d != nil {
			s.dialer = d
		}
	}
}

func NewSMTPSender(cfg Config, opts ...SMTPOption) (*SMTPSender, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("%w: MAIL_HOST is required", ErrInvalidConfig)
	}
	if cfg.SMTPPort <= 0 {
		return nil, fmt.Errorf("%w: MAIL_PORT must be positive", ErrInvalidConfig)
	}
	if !validAddress(cfg.From) {
		return nil, fmt.Errorf("%w: MAIL_FROM must be a valid address", ErrInvalidConfig)
	}

	s := &SMTPSender{
		dialer:  gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:    cfg.From,
		replyTo: cfg.ReplyTo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SendEmail opens a new connection per message. gomail has no context
// support, so ctx is only checked before dialing.
func (s *SMTPSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", params.SendTo)
	m.SetHeader("Subject", params.Subject)
	if s.replyTo != "" {
		m.SetHeader("Reply-To", s.replyTo)
	}
	if params.Tag != "" {
		m.SetHeader("X-Tag", params.Tag)
	}
	m.SetBody("text/html", params.BodyHTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	return nil
}
