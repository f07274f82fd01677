package api

import (
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/collablab-app/backend/errs"
	"github.com/descope/go-sdk/descope/client"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// identityMiddleware resolves the caller's external identity. When a Descope
// project is configured the session token is validated against the provider;
// otherwise the bearer token itself is taken as the external identity
// (dev and test mode).
type identityMiddleware struct {
	responder Responder
	descope   *client.DescopeClient
}

func newIdentityMiddleware(descopeProjectID string) identityMiddleware {
	logger := log.With().Str("handlerName", "identityMiddleware").Logger()
	m := identityMiddleware{
		responder: NewResponder(logger),
	}

	if descopeProjectID != "" {
		descopeClient, err := client.NewWithConfig(&client.Config{ProjectID: descopeProjectID})
		if err != nil {
			logger.Error().Err(err).Msg("Failed to initialize Descope client, falling back to bearer identities")
		} else {
			m.descope = descopeClient
		}
	}

	return m
}

func (m identityMiddleware) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			m.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			m.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		externalID := token
		if m.descope != nil {
			authorized, sessionToken, err := m.descope.Auth.ValidateSessionWithToken(r.Context(), token)
			if err != nil || !authorized {
				m.responder.WriteError(w, errs.NewInvalidTokenError(err))
				return
			}
			externalID = sessionToken.ID
		}

		updatedCtx := ctxWithExternalID(r.Context(), externalID)
		next.ServeHTTP(w, r.WithContext(updatedCtx))
	})
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func LogInternalServerErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				// Write 500 if nothing written yet
				if !srw.wroteHeader {
					srw.WriteHeader(http.StatusInternalServerError)
				}
			}
		}()

		next.ServeHTTP(srw, r)

		// Log 500s that weren't panics (e.g. manually set by handlers)
		if srw.status == http.StatusInternalServerError {
			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("500 error response")
		}
	})
}

// ColoredHTTPLoggingMiddleware logs HTTP requests with colored output based on status codes
func ColoredHTTPLoggingMiddleware(next http.Handler) http.Handler {
	colorLogger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		next.ServeHTTP(srw, r)

		duration := time.Since(start)

		var logEvent *zerolog.Event
		switch {
		case srw.status >= 500:
			logEvent = colorLogger.Error()
		case srw.status >= 400:
			logEvent = colorLogger.Warn()
		default:
			logEvent = colorLogger.Info()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", srw.status).
			Dur("duration", duration).
			Str("remote_addr", r.RemoteAddr).
			Msg("HTTP Request")
	})
}
