// internal/ua/context.go
//
// Request-context plumbing for parsed UA info, plus the enrichment
// middleware wired early in the public chain.  Crawler hits are counted so
// bot traffic is visible on /metrics without log scraping.
package ua

import (
	"context"
	"net/http"

	"github.com/yanizio/atlas/internal/metrics"
)

type ctxKey struct{}

// Middleware parses the User-Agent header once per request and stores the
// result in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := Parse(r.UserAgent())
		if info.IsBot {
			metrics.BotRequestsTotal.Inc()
		}
		next.ServeHTTP(w, r.WithContext(
			context.WithValue(r.Context(), ctxKey{}, info)))
	})
}

// FromContext returns the parsed Info, or a zero Info when the middleware
// did not run.
func FromContext(ctx context.Context) Info {
	if v, ok := ctx.Value(ctxKey{}).(Info); ok {
		return v
	}
	return Info{}
}
