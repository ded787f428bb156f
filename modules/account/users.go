package account

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/anihub/handler"
	"github.com/dmitrymomot/anihub/pkg/binder"
	"github.com/dmitrymomot/anihub/svc/auth"
)

// UsersService exposes account profiles to signed-in users.
type UsersService struct {
	accounts     AccountReader
	sessions     *Sessions
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewUsersService(accounts AccountReader, sessions *Sessions, errorHandler handler.ErrorHandler[handler.Context]) *UsersService {
	return &UsersService{
		accounts:     accounts,
		sessions:     sessions,
		errorHandler: errorHandler,
	}
}

func (s *UsersService) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(s.sessions.Guard(s.accounts, s.errorHandler))

	r.Get("/me", handler.Wrap(s.me,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	r.Get("/{id}", handler.Wrap(s.byID,
		handler.WithBinder[handler.Context, AccountRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[handler.Context, AccountRequest](s.errorHandler),
	))

	return r
}

func (s *UsersService) me(ctx handler.Context, _ struct{}) handler.Response {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return handler.Fail(auth.ErrInvalidSession)
	}
	id, err := claims.AccountID()
	if err != nil {
		return handler.Fail(err)
	}

	acc, err := s.accounts.Account(ctx, id)
	if errors.Is(err, auth.ErrAccountNotFound) {
		// The token outlived its account.
		return handler.Fail(auth.ErrInvalidSession)
	}
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(newUserResponse(acc))
}

func (s *UsersService) byID(ctx handler.Context, req AccountRequest) handler.Response {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return handler.Fail(handler.ErrNotFound)
	}

	acc, err := s.accounts.Account(ctx, id)
	if errors.Is(err, auth.ErrAccountNotFound) {
		return handler.Fail(handler.ErrNotFound)
	}
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(newUserResponse(acc))
}
