package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/anihub/handler"
	"github.com/dmitrymomot/anihub/pkg/binder"
	"github.com/dmitrymomot/anihub/pkg/validator"
)

// PasswordService serves registration, login, email verification and logout.
type PasswordService struct {
	cfg          Config
	auth         PasswordAuthenticator
	sessions     *Sessions
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewPasswordService(
	cfg Config,
	authenticator PasswordAuthenticator,
	sessions *Sessions,
	errorHandler handler.ErrorHandler[handler.Context],
) *PasswordService {
	return &PasswordService{
		cfg:          cfg,
		auth:         authenticator,
		sessions:     sessions,
		errorHandler: errorHandler,
	}
}

func (s *PasswordService) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/register", handler.Wrap(s.register,
		handler.WithBinder[handler.Context, RegisterRequest](binder.JSON()),
		handler.WithDecorators(validated[RegisterRequest]()),
		handler.WithErrorHandler[handler.Context, RegisterRequest](s.errorHandler),
	))

	r.Post("/login", handler.Wrap(s.login,
		handler.WithBinder[handler.Context, LoginRequest](binder.JSON()),
		handler.WithDecorators(validated[LoginRequest]()),
		handler.WithErrorHandler[handler.Context, LoginRequest](s.errorHandler),
	))

	r.Get("/verify-email", handler.Wrap(s.verifyEmail,
		handler.WithBinder[handler.Context, VerifyRequest](binder.Query()),
		handler.WithDecorators(validated[VerifyRequest]()),
		handler.WithErrorHandler[handler.Context, VerifyRequest](s.errorHandler),
	))

	r.Post("/resend-verification", handler.Wrap(s.resendVerification,
		handler.WithBinder[handler.Context, ResendRequest](binder.JSON()),
		handler.WithDecorators(validated[ResendRequest]()),
		handler.WithErrorHandler[handler.Context, ResendRequest](s.errorHandler),
	))

	r.Post("/logout", handler.Wrap(s.logout,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	return r
}

func (s *PasswordService) register(ctx handler.Context, req RegisterRequest) handler.Response {
	if err := s.auth.Register(ctx, req.input()); err != nil {
		return handler.Fail(err)
	}
	return handler.Message("Account created. Check your email to verify your account", handler.WithJSONStatus(http.StatusCreated))
}

func (s *PasswordService) login(ctx handler.Context, req LoginRequest) handler.Response {
	sess, err := s.auth.Login(ctx, validator.NormalizeEmail(req.Email), req.Password)
	if err != nil {
		return handler.Fail(err)
	}
	s.sessions.Start(ctx.ResponseWriter(), sess)
	return handler.JSON(LoginResponse{
		Message: "Logged in",
		User:    newUserResponse(sess.Account),
	})
}

func (s *PasswordService) verifyEmail(ctx handler.Context, req VerifyRequest) handler.Response {
	sess, err := s.auth.VerifyEmail(ctx, req.Token)
	if err != nil {
		return handler.Fail(err)
	}
	s.sessions.Start(ctx.ResponseWriter(), sess)
	return handler.RedirectWithCode(s.cfg.homeURL(), http.StatusFound)
}

func (s *PasswordService) resendVerification(ctx handler.Context, req ResendRequest) handler.Response {
	if err := s.auth.ResendVerification(ctx, validator.NormalizeEmail(req.Email)); err != nil {
		return handler.Fail(err)
	}
	return handler.Message("A new verification email has been sent")
}

func (s *PasswordService) logout(ctx handler.Context, _ struct{}) handler.Response {
	s.sessions.End(ctx.ResponseWriter())
	return handler.Message("Logged out")
}
