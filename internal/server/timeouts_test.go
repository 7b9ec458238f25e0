// internal/server/timeouts_test.go

package server

import (
	"testing"
	"time"
)

func TestNew_ZeroTimeoutsFallBack(t *testing.T) {
	srv := New(":8080", nil, 0, 0, 0)
	if srv.ReadTimeout != DefaultReadTimeout ||
		srv.WriteTimeout != DefaultWriteTimeout ||
		srv.IdleTimeout != DefaultIdleTimeout {
		t.Fatalf("defaults not applied: %v/%v/%v",
			srv.ReadTimeout, srv.WriteTimeout, srv.IdleTimeout)
	}
}

func TestNew_ConfiguredTimeoutsWin(t *testing.T) {
	srv := New(":8080", nil, time.Second, 2*time.Second, 3*time.Second)
	if srv.ReadTimeout != time.Second ||
		srv.WriteTimeout != 2*time.Second ||
		srv.IdleTimeout != 3*time.Second {
		t.Fatalf("configured values not applied: %v/%v/%v",
			srv.ReadTimeout, srv.WriteTimeout, srv.IdleTimeout)
	}
	if srv.Addr != ":8080" {
		t.Fatalf("addr = %q", srv.Addr)
	}
}
