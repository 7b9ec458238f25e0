// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// Context
// -------
// `internal/config/loader.go` calls `validateStruct` immediately after it
// unmarshals the merged Koanf tree into a `Config` instance.  Any tag
// mismatch or validation error aborts startup, ensuring the binary never
// runs with partial, malformed, or missing configuration.
//
// Beyond the built-in rules we register one cross-field check: every entry
// in `languages.fallbacks` must itself appear in `languages.supported`,
// otherwise the resolvers could chase a language no site publishes in.
//
// Notes
// -----
//   • Oxford commas, two spaces after periods.

package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

//
// validator instance (package-level singleton)
//

var v = validator.New()

//
// public API
//

// validateStruct returns the first validation error, or nil on success.
func validateStruct(c *Config) error {
	if err := v.Struct(c); err != nil {
		return err
	}

	supported := make(map[string]struct{}, len(c.Languages.Supported))
	for _, l := range c.Languages.Supported {
		supported[l] = struct{}{}
	}
	for _, l := range c.Languages.Fallbacks {
		if _, ok := supported[l]; !ok {
			return fmt.Errorf("languages.fallbacks entry %q is not in languages.supported", l)
		}
	}
	return nil
}
