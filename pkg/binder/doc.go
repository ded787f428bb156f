// Package binder decodes HTTP request data into typed request structs.
//
// Three sources are supported: a strict JSON body (JSON), query string
// parameters (Query) and router path parameters (Path). Query and path
// binders fill only fields carrying the `query` or `path` struct tag, and
// only string, signed integer and []string fields.
//
//	type VerifyRequest struct {
//		Token string `query:"token"`
//	}
//
//	h := handler.Wrap(verify, handler.WithBinder[handler.Context, VerifyRequest](binder.Query()))
//
// Binders never validate values; validation belongs to the request type.
package binder
