// cmd/web/main.go
//
// Atlas – HTTP entry point.
//
// Request life-cycle
// ------------------
//
//  1. Load env vars (jail-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load typed config; resolve the vault: database password.
//
//  4. Open the control-plane DB, apply embedded migrations, and log the
//     active-site count.
//
//  5. Build the site-aggregate cache (lazy-loads each site on first hit).
//
//  6. Wire the identity store + resolvers and the public content handler.
//
//  7. Expose Prometheus /metrics, wrap everything with ForceHTTPS when
//     configured, and serve with hardened timeouts.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanizio/atlas/internal/config"
	"github.com/yanizio/atlas/internal/content"
	"github.com/yanizio/atlas/internal/database"
	"github.com/yanizio/atlas/internal/identity"
	"github.com/yanizio/atlas/internal/logger"
	"github.com/yanizio/atlas/internal/middleware"
	"github.com/yanizio/atlas/internal/server"
	"github.com/yanizio/atlas/internal/site"
	"github.com/yanizio/atlas/internal/vault"
)

const serverEnvPath = "/usr/local/etc/atlas/global.env"

// loadEnv prefers the jail-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logOut.Fatalf("load config: %v", err)
	}

	ctx := context.Background()

	//
	// ── 1.  Secrets + global DB connect ────────────────────────────────
	//
	password := cfg.Database.Password
	if vault.IsURI(password) {
		cli, err := vault.New(ctx)
		if err != nil {
			logOut.Fatalf("vault client: %v", err)
		}
		if password, err = cli.ResolveValue(ctx, password); err != nil {
			logOut.Fatalf("resolve db password: %v", err)
		}
	}

	dsn := fmt.Sprintf(cfg.Database.DSN, password)
	globalDB, err := database.Open(dsn)
	if err != nil {
		logOut.Fatalf("connect global DB: %v", err)
	}
	defer globalDB.Close()
	logOut.Infow("global DB online")

	if err := database.Migrate(globalDB); err != nil {
		logOut.Fatalf("migrate: %v", err)
	}

	// Log active-site count as an early sanity check.
	if sites, err := site.AllActive(globalDB); err != nil {
		logOut.Warnw("active-site check failed", "err", err)
	} else {
		logOut.Infow("active sites", "count", len(sites))
	}

	//
	// ── 2.  Site cache + identity engine ───────────────────────────────
	//
	siteCache := site.New(globalDB, site.IdleTTL, site.MaxEntries)

	store := identity.NewSQLStore(globalDB)
	resolver := identity.New(store, cfg.Languages.Fallbacks)

	//
	// ── 3.  Routes: content + metrics ──────────────────────────────────
	//
	handler := content.NewHandler(
		resolver, siteCache, content.NewRepo(globalDB), cfg.Languages.Fallbacks)

	root := chi.NewRouter()
	root.Handle("/metrics", promhttp.Handler())
	root.Mount("/", handler.Routes())

	var h http.Handler = root
	if cfg.HTTP.ForceHTTPS {
		h = middleware.ForceHTTPS(root)
	}

	//
	// ── 4.  Serve ──────────────────────────────────────────────────────
	//
	srv := server.New(cfg.HTTP.ListenAddr, h,
		cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout, cfg.HTTP.IdleTimeout)
	logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
	if err := srv.ListenAndServe(); err != nil {
		logOut.Fatalf("http server: %v", err)
	}
}
