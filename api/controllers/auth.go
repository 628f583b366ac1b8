package controllers

import (
	"net/http"

	"github.com/sahajbill/counter/api/responses"
	"github.com/sahajbill/counter/api/validators"
	pkgerrors "github.com/sahajbill/counter/pkg/errors"
	"github.com/sahajbill/counter/pkg/logger"
	"github.com/sahajbill/counter/pkg/upstream"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthLogin relays the credential check to the billing backend and returns
// its token untouched. The gateway never mints tokens for real sign-ins.
func AuthLogin(client *upstream.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "billing client unavailable"))
			return
		}

		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := client.Login(r.Context(), payload.Email, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, wrapUpstream(err, "login"))
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func AuthLogout(client *upstream.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "billing client unavailable"))
			return
		}
		if err := client.Logout(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, wrapUpstream(err, "logout"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "signed_out"})
	}
}

func AuthMe(client *upstream.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "billing client unavailable"))
			return
		}
		user, err := client.Me(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, wrapUpstream(err, "load profile"))
			return
		}
		responses.WriteSuccess(w, user)
	}
}
