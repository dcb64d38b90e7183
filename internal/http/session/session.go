// Package session переносит JWT сессии в cookie.
//
// Cookie выставляется с HttpOnly, Secure и SameSite=None: фронтенд живёт на
// другом origin и отправляет запросы с credentials.
package session

import (
	"net/http"
	"time"
)

// CookieName имя cookie с токеном.
const CookieName = "token"

// SetToken выставляет cookie с токеном на ttl.
func SetToken(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// Clear удаляет cookie с токеном.
func Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// FromRequest возвращает токен из cookie или пустую строку.
func FromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
