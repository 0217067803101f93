package middlewares

import (
	"net/http"
	"time"

	"schedule-ledger-service/internal/pkg/exceptions"
	"schedule-ledger-service/internal/pkg/utils"

	"github.com/go-chi/httprate"
)

// RateLimiter limits each client IP to App.MaxRequests per second and answers
// with the standard error envelope once the limit is hit.
func (m *Middlewares) RateLimiter() func(next http.Handler) http.Handler {
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil))
		}),
	)
}
