package httpserver

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"golang.org/x/time/rate"

	"india_travel/internal/adapters/observability"
)

// RateLimit caps requests per client IP using store. Responses carry the
// X-RateLimit-* headers; exhausted clients get 429.
func RateLimit(store limiter.Store, rt limiter.Rate) func(http.Handler) http.Handler {
	mw := stdlib.NewMiddleware(limiter.New(store, rt),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			observability.ObserveThrottled("client")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			log.Error().Err(err).Msg("rate limit store failed")
			writeError(w, http.StatusInternalServerError, "internal error")
		}),
	)
	return mw.Handler
}

// LoadShed rejects requests with 503 once the whole server exceeds rps.
// rps <= 0 disables it.
func LoadShed(rps int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	tb := rate.NewLimiter(rate.Limit(rps), rps)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !tb.Allow() {
				observability.ObserveThrottled("overload")
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusServiceUnavailable, "server busy")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
