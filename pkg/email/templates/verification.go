package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// VerificationData fills the email-verification message.
type VerificationData struct {
	AppName string
	Name    string
	Link    string
	// ValidFor is a human readable lifetime such as "1 hour".
	ValidFor string
}

// Verification renders the email-verification message.
func Verification(d VerificationData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		link := templ.EscapeString(string(templ.URL(d.Link)))
		_, err := fmt.Fprintf(w, `<!doctype html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>%s</h2>
  <p>Hi %s,</p>
  <p>Confirm your email address to finish creating your account.</p>
  <p><a href="%s" style="display:inline-block;padding:10px 18px;background:#4f46e5;color:#fff;text-decoration:none;border-radius:6px;">Verify email</a></p>
  <p>Or open this link: <a href="%s">%s</a></p>
  <p style="color:#666;font-size:12px;">The link expires in %s. If you did not sign up, ignore this message.</p>
</body>
</html>`,
			templ.EscapeString(d.AppName),
			templ.EscapeString(d.Name),
			link, link, link,
			templ.EscapeString(d.ValidFor),
		)
		return err
	})
}
