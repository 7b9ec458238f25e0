// internal/identity/model.go
//
// Identity records: language-scoped site aliases and entity slugs.
//
// Context
// -------
// Public URLs name content with two human-facing strings: a site key (which
// tenant) and a slug (which entity inside it).  Both strings may be stale —
// editors rename entities and re-key sites — so every record carries an
// active flag, a canonical/primary designation, and an optional one-hop
// redirect pointer.  The resolvers in this package turn those strings into
// stable internal identities and report whether the caller's URL should be
// redirected to the canonical form.
//
// Notes
// -----
// • Old slug rows are demoted, never deleted, so stale URLs keep resolving.
// • `Target` fields hold the eagerly joined redirect target; nil when the
//   pointer is unset or dangling.
// • Oxford commas, two spaces after periods.
package identity

// EntityType enumerates the kinds of content a slug can point at.
type EntityType string

const (
	EntityPlace EntityType = "place"
	EntityTown  EntityType = "town"
	EntityEvent EntityType = "event"
	EntityPage  EntityType = "page"
)

// AliasRecord mirrors one row in `site_alias`.  An alias is the public key
// for a site in one language; exactly one alias per (site, lang) should be
// canonical, though the resolver tolerates data that violates this.
type AliasRecord struct {
	ID          uint64
	SiteID      uint64
	Lang        string
	Alias       string
	IsActive    bool
	IsCanonical bool
	RedirectTo  string // target alias string in the same language; empty when none

	Target *AliasRecord // joined redirect target, nil when unset or missing
}

// SlugRecord mirrors one row in `slug`.  A slug names one entity within a
// (site, lang) namespace; the primary row is the entity's canonical slug,
// demoted rows are kept for redirects.
type SlugRecord struct {
	ID         uint64
	SiteID     uint64
	Lang       string
	Slug       string
	EntityType EntityType
	EntityID   uint64
	IsActive   bool
	IsPrimary  bool
	RedirectTo uint64 // target slug id; 0 when none

	Target *SlugRecord // joined redirect target, nil when unset or missing
}
