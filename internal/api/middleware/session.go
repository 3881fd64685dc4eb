package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	// SessionHeader заголовок с ID анонимной сессии покупателя
	SessionHeader = "X-Session-ID"

	// SessionCookie cookie с ID сессии для браузерного клиента
	SessionCookie = "salon_session"

	sessionCookieMaxAge = 24 * 60 * 60
)

// GetSessionID достает ID сессии, установленный Session
func GetSessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey).(string)
	return id
}

// Session берет ID сессии из заголовка или cookie, иначе выдает новый и возвращает его клиенту
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := sessionFromRequest(r)
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   sessionCookieMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		w.Header().Set(SessionHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, id)))
	})
}

// sessionFromRequest принимает только корректные UUID
func sessionFromRequest(r *http.Request) string {
	if raw := r.Header.Get(SessionHeader); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			return id.String()
		}
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}
	return ""
}
