// internal/identity/slug.go
//
// Slug resolution.
//
// Context
// -------
// A (siteID, lang, slug) triple names one entity.  The slug may be an old
// URL left behind by a rename, or an explicit admin redirect.  Resolution
// mirrors the site-key rules, scoped to entities:
//
//   a. explicit one-hop redirect to an active target  → redirected,
//   b. stale non-primary slug                         → the entity's active
//      primary slug, redirected,
//   c. primary slug matched                           → as-is,
//   d. non-primary slug whose entity has no primary   → caller's slug kept
//      (availability-preserving anomaly fallback).
//
// The redirect target is trusted to already be canonical; deeper chains are
// a write-time hygiene concern and are deliberately not chased here.
//
// Notes
// -----
// • Pure read; write-side invariant maintenance lives in rename.go.
// • Oxford commas, two spaces after periods.
package identity

import "context"

// SlugResolution is the result of a slug lookup.
type SlugResolution struct {
	EntityType EntityType
	EntityID   uint64
	Slug       string // canonical slug for the entity in this (site, lang)
	Redirected bool   // caller's slug was stale
}

// SlugResolver resolves slugs within an already-resolved site.
type SlugResolver struct {
	store Store
}

// NewSlugResolver constructs a resolver over store.
func NewSlugResolver(store Store) *SlugResolver {
	return &SlugResolver{store: store}
}

// Resolve maps (siteID, lang, slug) to an entity reference.  siteID must
// come from a prior site resolution.  Returns ErrSlugUnresolved when no
// active record matches; an inactive record resolves identically to a
// missing one.
func (r *SlugResolver) Resolve(ctx context.Context, siteID uint64, lang, slug string) (*SlugResolution, error) {
	rec, err := r.store.Slug(ctx, siteID, lang, slug)
	if err != nil {
		return nil, err
	}
	if rec == nil || !rec.IsActive {
		return nil, ErrSlugUnresolved
	}

	// a. Explicit single-hop redirect.  A pointer to an inactive or missing
	// target counts as no redirect and falls through.
	if t := rec.Target; t != nil && t.IsActive {
		return &SlugResolution{
			EntityType: t.EntityType,
			EntityID:   t.EntityID,
			Slug:       t.Slug,
			Redirected: true,
		}, nil
	}

	// b. Stale slug left behind by a rename: chase the entity's current
	// primary.  One extra scan, only on this path.
	if !rec.IsPrimary {
		p, err := r.store.PrimarySlug(ctx, siteID, lang, rec.EntityType, rec.EntityID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			return &SlugResolution{
				EntityType: p.EntityType,
				EntityID:   p.EntityID,
				Slug:       p.Slug,
				Redirected: true,
			}, nil
		}
		// d. No primary anywhere: keep serving under the caller's slug
		// rather than failing the request.
	}

	// c. Canonical as-is (resolving the primary slug is idempotent).
	return &SlugResolution{
		EntityType: rec.EntityType,
		EntityID:   rec.EntityID,
		Slug:       rec.Slug,
		Redirected: false,
	}, nil
}
