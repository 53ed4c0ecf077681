package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lovenest/storefront/pkg/config"
	"github.com/lovenest/storefront/pkg/logger"
)

// Session reads the browsing session cookie, minting a fresh uuid when it is
// missing or malformed, and refreshes the cookie on every response. The
// cookie lives as long as the cart snapshot so a returning shopper finds
// their cart again.
func Session(cfg config.SessionConfig, maxAge time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	name := cfg.CookieName
	if name == "" {
		name = "lovenest_session"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(name); err == nil {
				if parsed, err := uuid.Parse(cookie.Value); err == nil {
					sessionID = parsed.String()
				}
			}
			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			http.SetCookie(w, &http.Cookie{
				Name:     name,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int(maxAge.Seconds()),
				HttpOnly: true,
				Secure:   cfg.CookieSecure,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
