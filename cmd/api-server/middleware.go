package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/protomem/task-tracker/internal/auth"
	"github.com/protomem/task-tracker/internal/ctxstore"
	"github.com/protomem/task-tracker/internal/model"
	"github.com/protomem/task-tracker/internal/response"
	"github.com/rs/cors"

	"github.com/tomasen/realip"
)

const (
	_traceIDKey  = ctxstore.Key("traceId")
	_authUserKey = ctxstore.Key("authUserId")
)

func (app *application) traceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tid := genTraceID()
		ctx := ctxstore.With(r.Context(), _traceIDKey, tid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			err := recover()
			if err != nil {
				app.serverError(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *application) logAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mw := response.NewMetricsResponseWriter(w)
		next.ServeHTTP(mw, r)

		var (
			ip     = realip.FromRequest(r)
			method = r.Method
			url    = r.URL.String()
			proto  = r.Proto
			tid    = ctxstore.MustFrom[string](r.Context(), _traceIDKey)
		)

		userAttrs := slog.Group("user", "ip", ip)
		requestAttrs := slog.Group("request", "method", method, "url", url, "proto", proto, _traceIDKey.String(), tid)
		responseAttrs := slog.Group("response", "status", mw.StatusCode, "size", mw.BytesCount)

		app.serverLogger().Info("access", userAttrs, requestAttrs, responseAttrs)
	})
}

func (app *application) CORS(next http.Handler) http.Handler {
	return cors.AllowAll().Handler(next)
}

// authenticate gates a route group behind a valid bearer session. Missing,
// malformed, expired, and revoked tokens are indistinguishable to the caller.
func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			app.authenticationRequired(w, r)
			return
		}

		userID, err := app.sessions.Validate(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidSession) {
				app.authenticationRequired(w, r)
				return
			}

			app.serverError(w, r, err)
			return
		}

		ctx := ctxstore.With(r.Context(), _authUserKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authenticatedUser returns the identity resolved by the authenticate
// middleware. Calling it outside an authenticated route is a programming
// error.
func (app *application) authenticatedUser(r *http.Request) model.UserID {
	return ctxstore.MustFrom[model.UserID](r.Context(), _authUserKey)
}

func bearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func genTraceID() string {
	id, _ := uuid.NewRandom()
	return id.String()
}
