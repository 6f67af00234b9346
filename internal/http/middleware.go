package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	visitorIDKey contextKey = "visitor_id"
)

const (
	SessionCookieName = "kolor_session"
	sessionVisitorKey = "visitor_id"
)

// RequestIDMiddleware echoes or creates an X-Request-ID for every request.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestLogger logs one line per request once the response is written.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.InfoContext(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", getRequestID(r.Context()),
			)
		})
	}
}

// VisitorMiddleware identifies the visitor by a signed session cookie, issuing a new id on first contact.
func VisitorMiddleware(store sessions.Store, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// A tampered or expired cookie still yields a fresh session here.
			sess, err := store.Get(r, SessionCookieName)
			if err != nil {
				log.DebugContext(r.Context(), "discarding unreadable session cookie", "error", err)
			}

			visitorID, _ := sess.Values[sessionVisitorKey].(string)
			if visitorID == "" {
				visitorID = uuid.NewString()
				sess.Values[sessionVisitorKey] = visitorID
				if err := sess.Save(r, w); err != nil {
					log.ErrorContext(r.Context(), "failed to save session cookie", "error", err)
				}
			}

			ctx := context.WithValue(r.Context(), visitorIDKey, visitorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NewCookieStore builds the session cookie store used by VisitorMiddleware.
func NewCookieStore(secret string) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

func getVisitorIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(visitorIDKey).(string); ok {
		return id
	}
	return ""
}

func getRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}
