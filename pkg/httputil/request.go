package httputil

import (
	"errors"
	"net/http"
)

const WatchCookieName = "watch_token"

var ErrNoToken = errors.New("no watch token found in query, cookie or header")

// GetTokenFromRequest looks for a token in ?token=, the watch cookie and
// the Authorization header, in that order. Browsers cannot set headers on
// a WebSocket upgrade, hence the query parameter.
func GetTokenFromRequest(r *http.Request) (string, error) {
	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}

	if cookie, err := r.Cookie(WatchCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Support "Bearer <token>" format
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			return authHeader[7:], nil
		}
		return authHeader, nil
	}

	return "", ErrNoToken
}
