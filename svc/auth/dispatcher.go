package auth

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/anihub/pkg/email"
	"github.com/dmitrymomot/anihub/pkg/email/templates"
)

// Dispatcher delivers verification links.
type Dispatcher interface {
	SendVerification(ctx context.Context, acc Account, rawToken string) error
}

// EmailDispatcher renders the verification email and hands it to an email.EmailSender.
type EmailDispatcher struct {
	sender   email.EmailSender
	apiURL   string
	appName  string
	validFor time.Duration
}

// NewEmailDispatcher builds verification links from cfg.APIURL and states
// the token lifetime from cfg.VerificationTTL in the email body.
func NewEmailDispatcher(sender email.EmailSender, cfg Config) *EmailDispatcher {
	ttl := cfg.VerificationTTL
	if ttl <= 0 {
		ttl = DefaultVerificationTTL
	}
	return &EmailDispatcher{
		sender:   sender,
		apiURL:   strings.TrimRight(cfg.APIURL, "/"),
		appName:  cfg.AppName,
		validFor: ttl,
	}
}

// VerificationLink returns the URL the user follows to verify their email.
func (d *EmailDispatcher) VerificationLink(rawToken string) string {
	return d.apiURL + "/auth/verify-email?token=" + url.QueryEscape(rawToken)
}

func (d *EmailDispatcher) SendVerification(ctx context.Context, acc Account, rawToken string) error {
	body, err := templates.Render(ctx, templates.Verification(templates.VerificationData{
		AppName:  d.appName,
		Name:     acc.Name,
		Link:     d.VerificationLink(rawToken),
		ValidFor: humanizeDuration(d.validFor),
	}))
	if err != nil {
		return fmt.Errorf("%w: render: %w", ErrDispatchFailed, err)
	}

	if err := d.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   acc.Email,
		Subject:  fmt.Sprintf("Verify your %s account", d.appName),
		BodyHTML: body,
		Tag:      "email-verification",
	}); err != nil {
		return fmt.Errorf("%w: %w", ErrDispatchFailed, err)
	}
	return nil
}

func humanizeDuration(d time.Duration) string {
	switch {
	case d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	case d%time.Minute == 0:
		return plural(int(d/time.Minute), "minute")
	default:
		return d.String()
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
