// internal/identity/resolver.go
//
// Combined resolution: one round trip from (lang, siteKey, slug) to a
// canonical-URL decision.
//
// Context
// -------
// Public endpoints receive a site key and a slug in the same request.  The
// combined pass runs the site resolver first (the site scopes the slug
// namespace and is the language authority), then the slug resolver with
// the resolved site id, and merges the two independent redirect signals
// into one boolean plus one canonical (lang, siteKey, slug) triple.  It
// adds no resolution logic of its own; failures from either stage
// propagate verbatim.
package identity

import "context"

// CanonicalURL is the preferred public address of a resolved identity.
type CanonicalURL struct {
	Lang    string
	SiteKey string
	Slug    string
}

// Resolution is the combined result handed to content-serving and
// redirect-issuing callers.
type Resolution struct {
	SiteID     uint64
	Lang       string
	EntityType EntityType
	EntityID   uint64
	Canonical  CanonicalURL

	// NeedsRedirect is true when either the site key or the slug was
	// stale; callers issue an HTTP redirect to Canonical when set.
	NeedsRedirect bool
}

// Resolver composes the site and slug resolvers.
type Resolver struct {
	Sites *SiteResolver
	Slugs *SlugResolver
}

// New wires both resolvers over one store with the configured language
// fallback chain.
func New(store Store, fallbacks []string) *Resolver {
	return &Resolver{
		Sites: NewSiteResolver(store, fallbacks),
		Slugs: NewSlugResolver(store),
	}
}

// Resolve performs the combined pass.  Resolving a fully canonical URL is
// idempotent: it returns the same triple with NeedsRedirect == false.
func (r *Resolver) Resolve(ctx context.Context, lang, siteKey, slug string) (*Resolution, error) {
	site, err := r.Sites.Resolve(ctx, lang, siteKey)
	if err != nil {
		return nil, err
	}

	ent, err := r.Slugs.Resolve(ctx, site.SiteID, site.Lang, slug)
	if err != nil {
		return nil, err
	}

	return &Resolution{
		SiteID:     site.SiteID,
		Lang:       site.Lang,
		EntityType: ent.EntityType,
		EntityID:   ent.EntityID,
		Canonical: CanonicalURL{
			Lang:    site.Lang,
			SiteKey: site.SiteKey,
			Slug:    ent.Slug,
		},
		NeedsRedirect: site.Redirected || ent.Redirected,
	}, nil
}
