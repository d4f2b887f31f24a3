package middleware

import (
	"net"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rogerio-castellano/loja-api/internal/http/ban"
	rl "github.com/rogerio-castellano/loja-api/internal/http/rate_limiter"
)

// RateLimit throttles requests per client IP. Clients that keep hitting the limit
// collect strikes in guard and are refused with 403 while banned.
// Ban store failures are logged and do not block traffic.
func RateLimit(limiter *rl.Limiter, guard *ban.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			logger := zerolog.Ctx(ctx)
			ip := clientIP(r)

			banned, err := guard.IsBanned(ctx, ip)
			if err != nil {
				logger.Error().Err(err).Str("ip", ip).Msg("ban lookup failed")
			}
			if banned {
				writeError(w, http.StatusForbidden, "too many requests, client temporarily banned")
				return
			}

			if !limiter.Allow(ip) {
				if _, err := guard.Strike(ctx, ip, r.URL.Path); err != nil {
					logger.Error().Err(err).Str("ip", ip).Msg("strike failed")
				}
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
