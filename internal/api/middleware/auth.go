package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/Holding-1-at-a-time/booking-service/internal/auth"
)

const (
	headerAdminToken    = "X-Admin-Token"
	headerCustomerEmail = "X-Customer-Email"
)

// Auth разрешает capability вызывающего на границе.
// Валидный X-Admin-Token дает admin; иначе guest с X-Customer-Email,
// если тот передан. Отдельные операции решают сами, что кому доступно.
func Auth(adminToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := resolveActor(r, adminToken)
			next.ServeHTTP(w, r.WithContext(auth.WithContext(r.Context(), actor)))
		})
	}
}

func resolveActor(r *http.Request, adminToken string) auth.Context {
	if token := r.Header.Get(headerAdminToken); token != "" {
		// Сравнение за постоянное время
		if subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) == 1 {
			return auth.Admin()
		}
	}
	return auth.Guest(r.Header.Get(headerCustomerEmail))
}
