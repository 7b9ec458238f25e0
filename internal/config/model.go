// internal/config/model.go
//
// Typed configuration model for Atlas.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                         – dotenv values,
//   • `conf/global.yaml`                      – primary static file,
//   • `ATLAS_`-prefixed environment overrides – highest precedence.
//
// The database password may be given literally or as a `vault:` URI
// (`vault:secret/data/atlas#db_password`); cmd/web resolves the URI
// through internal/vault before the DSN is assembled.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.  No em-dash.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.  Zero-valued timeouts fall back to the
// defaults in internal/server.
type HTTP struct {
	ListenAddr   string        `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS   bool          `koanf:"force_https"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

//
// Database section
//

// Database holds the control-plane DSN.  The DSN carries a `%s` verb where
// the password goes; `Password` may be a literal or a `vault:` URI.
type Database struct {
	DSN      string `koanf:"dsn"      validate:"required"`
	Password string `koanf:"password" validate:"required"`
}

//
// Languages section
//

// Languages declares the supported language codes and the ordered fallback
// chain applied by the identity resolvers and translation lookups.  The
// fallback list is deployment configuration, not a hard-coded default, so
// the rule stays testable per environment.
type Languages struct {
	Supported []string `koanf:"supported" validate:"required,min=1"`
	Fallbacks []string `koanf:"fallbacks" validate:"required,min=1"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or ATLAS_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string // ATLAS_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP      HTTP      `koanf:"http"`
	Database  Database  `koanf:"database"`
	Languages Languages `koanf:"languages"`
	Paths     Paths     `koanf:"-"` // not loaded from config files
}
