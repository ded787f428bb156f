package email

import "fmt"

const (
	DriverSMTP     = "smtp"
	DriverPostmark = "postmark"
	DriverDev      = "dev"
)

type Config struct {
	Driver  string `env:"MAIL_DRIVER" envDefault:"smtp"`
	From    string `env:"MAIL_FROM" envDefault:"AniHub <no-reply@anihub.app>"`
	ReplyTo string `env:"MAIL_REPLY_TO"`

	SMTPHost     string `env:"MAIL_HOST" envDefault:"localhost"`
	SMTPPort     int    `env:"MAIL_PORT" envDefault:"587"`
	SMTPUser     string `env:"MAIL_USER"`
	SMTPPassword string `env:"MAIL_PASS"`

	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`

	DevDir string `env:"MAIL_DEV_DIR" envDefault:"./tmp/emails"`
}

// New returns the sender for cfg.Driver.
func New(cfg Config) (EmailSender, error) {
	switch cfg.Driver {
	case DriverSMTP, "":
		return NewSMTPSender(cfg)
	case DriverPostmark:
		return NewPostmarkClient(cfg)
	case DriverDev:
		return NewDevSender(cfg.DevDir), nil
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", ErrInvalidConfig, cfg.Driver)
	}
}
