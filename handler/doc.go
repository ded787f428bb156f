// Package handler provides type-safe JSON request handling on top of net/http.
//
// A HandlerFunc receives a Context and a bound request value and returns a
// Response. Wrap turns it into an http.HandlerFunc, running the configured
// binders, decorators and error handler:
//
//	type LoginRequest struct {
//		Email    string `json:"email"`
//		Password string `json:"password"`
//	}
//
//	func login(ctx handler.Context, req LoginRequest) handler.Response {
//		session, err := svc.Login(ctx, req.Email, req.Password)
//		if err != nil {
//			return handler.Fail(err)
//		}
//		return handler.JSON(session)
//	}
//
//	r.Post("/auth/login", handler.Wrap(login,
//		handler.WithBinder[handler.Context, LoginRequest](binder.JSON()),
//		handler.WithErrorHandler[handler.Context, LoginRequest](errHandler),
//	))
//
// # Errors
//
// Binding failures, render failures and responses built with Fail are all
// routed to the ErrorHandler. NewErrorHandler classifies them (validation
// errors, binder errors, HTTPError values and any registered Classifier)
// and writes a JSON body of the shape {"message": "...", "errors": {...}}.
//
// # Responses
//
//   - JSON and Message write application/json bodies.
//   - Redirect and RedirectWithCode issue HTTP redirects.
//   - Empty and EmptyWithStatus write only a status code.
package handler
