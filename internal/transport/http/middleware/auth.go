package middleware

import (
	"log"
	"net/http"

	"github.com/iamasit07/4-in-a-row/engine/pkg/auth"
	"github.com/iamasit07/4-in-a-row/engine/pkg/httputil"
)

// RequireWatchToken rejects requests without a valid watch token. An empty
// secret disables the check.
func RequireWatchToken(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := httputil.GetTokenFromRequest(r)
			if err != nil {
				httputil.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if _, err := auth.ValidateWatchToken(secret, tokenString); err != nil {
				log.Printf("[WATCH] Invalid token from %s: %v", r.RemoteAddr, err)
				httputil.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
