package logger

// Config holds logger settings read from the environment.
type Config struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	Service string `env:"SERVICE_NAME" envDefault:"anihub"`
	Level   string `env:"LOG_LEVEL" envDefault:""`
}
