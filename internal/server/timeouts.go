// internal/server/timeouts.go
//
// http.Server construction with hardened timeouts.
//
// The defaults guard against slow-loris headers (ReadTimeout), unbounded
// responses (WriteTimeout), and idle keep-alive hoarding (IdleTimeout).
// Deployments tune them through the http section of the config; a zero
// value falls back to the package default, so callers only configure what
// they change.

package server

import (
	"net/http"
	"time"
)

// Fallbacks applied when the config leaves a timeout unset.
const (
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 15 * time.Second
	DefaultIdleTimeout  = 60 * time.Second
)

// New constructs an *http.Server for addr with the given timeouts.
func New(addr string, handler http.Handler, read, write, idle time.Duration) *http.Server {
	if read == 0 {
		read = DefaultReadTimeout
	}
	if write == 0 {
		write = DefaultWriteTimeout
	}
	if idle == 0 {
		idle = DefaultIdleTimeout
	}
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  read,
		WriteTimeout: write,
		IdleTimeout:  idle,
		// TLSConfig may be injected by callers (e.g., autocert).
	}
}
