// Package middleware содержит HTTP middleware веб-сервиса бота.
package middleware

import (
	"crypto/hmac"
	"net/http"
)

// SecretHeader заголовок, в котором Telegram передаёт секрет вебхука.
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// SecretMiddleware проверяет секрет вебхука.
type SecretMiddleware struct {
	secret []byte
}

// NewSecretMiddleware создаёт проверку секрета. Пустой секрет отключает проверку.
func NewSecretMiddleware(secret string) *SecretMiddleware {
	return &SecretMiddleware{secret: []byte(secret)}
}

// Middleware пропускает запрос только с верным значением SecretHeader.
func (m *SecretMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(m.secret) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		if !hmac.Equal([]byte(r.Header.Get(SecretHeader)), m.secret) {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
