// internal/identity/site.go
//
// Site-key resolution.
//
// Context
// -------
// A (lang, siteKey) pair names a tenant site.  The key may be stale (the
// site was re-keyed and the old alias now redirects) or empty (default site
// for the language).  Resolution walks the configured language chain, and
// per language evaluates, in order:
//
//   a. one redirect hop to an active target alias  → redirected,
//   b. canonical alias matched                     → as-is,
//   c. non-canonical alias with no live redirect   → caller's key kept
//      (availability over strict canonicalization; a data anomaly must not
//      turn into a hard failure).
//
// The language that produced the match becomes the resolved language; the
// site resolver is the language authority for the combined pass.  A match
// found through the fallback chain is NOT a redirect signal: the caller's
// URL stays valid for its own language, and bouncing to another language's
// URL over a translation gap would punish content lag with a redirect.
//
// Notes
// -----
// • Pure read; the store is never mutated.
// • Oxford commas, two spaces after periods.
package identity

import (
	"context"

	"github.com/yanizio/atlas/internal/i18n"
)

// SiteResolution is the result of a site-key lookup.
type SiteResolution struct {
	SiteID     uint64
	Lang       string // language the alias matched in
	SiteKey    string // canonical public key for the site in Lang
	Redirected bool   // caller's key was stale
}

// SiteResolver resolves (lang, siteKey) pairs.  The fallback chain comes
// from deployment config, not a hard-coded default.
type SiteResolver struct {
	store     Store
	fallbacks []string
}

// NewSiteResolver constructs a resolver over store with the given ordered
// language fallbacks.
func NewSiteResolver(store Store, fallbacks []string) *SiteResolver {
	return &SiteResolver{store: store, fallbacks: fallbacks}
}

// Resolve maps a (lang, siteKey) pair to a canonical site identity.  An
// empty siteKey selects the default site for the language.  Returns
// ErrSiteUnresolved when no active alias matches in any chain language.
func (r *SiteResolver) Resolve(ctx context.Context, lang, siteKey string) (*SiteResolution, error) {
	for _, l := range i18n.Chain(lang, r.fallbacks) {
		var (
			rec *AliasRecord
			err error
		)
		if siteKey == "" {
			rec, err = r.store.DefaultSiteAlias(ctx, l)
		} else {
			rec, err = r.store.SiteAlias(ctx, l, siteKey)
		}
		if err != nil {
			return nil, err
		}
		if rec == nil || !rec.IsActive {
			continue
		}

		// a. One redirect hop; the target is trusted to be canonical.  A
		// pointer to an inactive or missing alias counts as no redirect.
		if t := rec.Target; t != nil && t.IsActive {
			return &SiteResolution{
				SiteID:     t.SiteID,
				Lang:       l,
				SiteKey:    t.Alias,
				Redirected: true,
			}, nil
		}

		// b. Canonical alias, or c. anomalous non-canonical alias with no
		// live redirect.  Either way the caller's key is served as-is.
		return &SiteResolution{
			SiteID:     rec.SiteID,
			Lang:       l,
			SiteKey:    rec.Alias,
			Redirected: false,
		}, nil
	}
	return nil, ErrSiteUnresolved
}
