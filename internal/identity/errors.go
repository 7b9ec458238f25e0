package identity

import "errors"

// The engine has exactly two terminal failure kinds.  Both present a stale
// or unknown URL the same way as a deactivated one; callers translate them
// into a plain not-found response.
var (
	// ErrSiteUnresolved means the site key has no active alias in the
	// requested language or any configured fallback.
	ErrSiteUnresolved = errors.New("identity: site key unresolved")

	// ErrSlugUnresolved means the slug has no active record in the resolved
	// (site, lang) scope.
	ErrSlugUnresolved = errors.New("identity: slug unresolved")
)

// IsNotFound reports whether err is one of the two resolution failures, as
// opposed to a store error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSiteUnresolved) || errors.Is(err, ErrSlugUnresolved)
}
