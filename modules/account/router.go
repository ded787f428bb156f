package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures which services to mount in the account module.
// Each service is optional and is only mounted if provided.
type RouterOptions struct {
	Password Mountable
	// OAuth services are mounted at /auth/{provider}.
	OAuth []*OAuthService
	Users Mountable
}

// Router creates the account module router.
//
//	r := chi.NewRouter()
//	r.Mount("/", account.Router(account.RouterOptions{
//		Password: account.NewPasswordService(cfg, svc, sessions, errHandler),
//		OAuth:    []*account.OAuthService{googleSvc},
//		Users:    account.NewUsersService(svc, sessions, errHandler),
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	r.Route("/auth", func(a chi.Router) {
		if opts.Password != nil {
			a.Mount("/", opts.Password.Handle())
		}
		for _, svc := range opts.OAuth {
			if svc != nil {
				a.Mount("/"+svc.Provider(), svc.Handle())
			}
		}
	})

	if opts.Users != nil {
		r.Mount("/users", opts.Users.Handle())
	}

	return r
}
