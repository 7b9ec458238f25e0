// internal/identity/store.go
//
// Identity store: point lookups against `site_alias` and `slug`.
//
// Context
// -------
// The resolvers consume the Store interface; SQLStore is the production
// implementation on the control-plane MySQL pool.  Lookups return
// (nil, nil) on a miss so the resolvers own the not-found decision, and
// each alias/slug lookup eagerly LEFT JOINs its redirect target to keep
// the hot path at one round trip.
//
// Workflow
// --------
//  1. Callers supply a *sqlx.DB connected to the control-plane database.
//  2. Each helper executes exactly one parameterised SELECT.
//  3. Rows are scanned into flat row structs, then folded into the
//     AliasRecord / SlugRecord aggregates with nested targets.
//
// Notes
// -----
//   - Column list matches the row structs; update both together.
//   - All point lookups carry `LIMIT 1`.
//   - Oxford commas, two spaces after periods.
package identity

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Store is the read contract the resolvers depend on.  All methods return
// (nil, nil) when no row matches.
type Store interface {
	// SiteAlias fetches the alias keyed by (lang, key), with its redirect
	// target joined.
	SiteAlias(ctx context.Context, lang, key string) (*AliasRecord, error)

	// DefaultSiteAlias fetches the canonical alias of the default site for
	// one language.  Used when the caller supplies an empty site key.
	DefaultSiteAlias(ctx context.Context, lang string) (*AliasRecord, error)

	// Slug fetches the slug keyed by (siteID, lang, slug), with its
	// redirect target joined.
	Slug(ctx context.Context, siteID uint64, lang, slug string) (*SlugRecord, error)

	// PrimarySlug scans for the active, non-redirecting, primary slug of
	// one entity.
	PrimarySlug(ctx context.Context, siteID uint64, lang string,
		entityType EntityType, entityID uint64) (*SlugRecord, error)
}

// SQLStore implements Store on a shared sqlx pool.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore wraps db.  The pool is shared; SQLStore never mutates it.
func NewSQLStore(db *sqlx.DB) *SQLStore { return &SQLStore{db: db} }

//
// site_alias lookups
//

type aliasRow struct {
	ID          uint64         `db:"id"`
	SiteID      uint64         `db:"site_id"`
	Lang        string         `db:"lang"`
	Alias       string         `db:"alias"`
	IsActive    bool           `db:"is_active"`
	IsCanonical bool           `db:"is_canonical"`
	RedirectTo  sql.NullString `db:"redirect_to"`

	TgtID        sql.NullInt64  `db:"tgt_id"`
	TgtSiteID    sql.NullInt64  `db:"tgt_site_id"`
	TgtAlias     sql.NullString `db:"tgt_alias"`
	TgtActive    sql.NullBool   `db:"tgt_is_active"`
	TgtCanonical sql.NullBool   `db:"tgt_is_canonical"`
}

func (r aliasRow) record() *AliasRecord {
	rec := &AliasRecord{
		ID:          r.ID,
		SiteID:      r.SiteID,
		Lang:        r.Lang,
		Alias:       r.Alias,
		IsActive:    r.IsActive,
		IsCanonical: r.IsCanonical,
		RedirectTo:  r.RedirectTo.String,
	}
	if r.TgtID.Valid {
		rec.Target = &AliasRecord{
			ID:          uint64(r.TgtID.Int64),
			SiteID:      uint64(r.TgtSiteID.Int64),
			Lang:        r.Lang,
			Alias:       r.TgtAlias.String,
			IsActive:    r.TgtActive.Bool,
			IsCanonical: r.TgtCanonical.Bool,
		}
	}
	return rec
}

func (s *SQLStore) SiteAlias(ctx context.Context, lang, key string) (*AliasRecord, error) {
	const q = `
        SELECT a.id, a.site_id, a.lang, a.alias, a.is_active, a.is_canonical,
               a.redirect_to,
               t.id           AS tgt_id,
               t.site_id      AS tgt_site_id,
               t.alias        AS tgt_alias,
               t.is_active    AS tgt_is_active,
               t.is_canonical AS tgt_is_canonical
        FROM   site_alias a
        LEFT JOIN site_alias t
               ON t.lang = a.lang AND t.alias = a.redirect_to
        WHERE  a.lang = ? AND a.alias = ?
        LIMIT  1`
	var row aliasRow
	if err := s.db.GetContext(ctx, &row, q, lang, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row.record(), nil
}

func (s *SQLStore) DefaultSiteAlias(ctx context.Context, lang string) (*AliasRecord, error) {
	// The default site's canonical alias never carries a redirect, so no
	// target join is needed here.
	const q = `
        SELECT a.id, a.site_id, a.lang, a.alias, a.is_active, a.is_canonical,
               a.redirect_to
        FROM   site_alias a
        JOIN   site s ON s.id = a.site_id
        WHERE  s.is_default   = 1
          AND  s.suspended_at IS NULL
          AND  s.deleted_at   IS NULL
          AND  a.lang = ? AND a.is_canonical = 1 AND a.is_active = 1
        LIMIT  1`
	var row aliasRow
	if err := s.db.GetContext(ctx, &row, q, lang); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row.record(), nil
}

//
// slug lookups
//

type slugRow struct {
	ID         uint64     `db:"id"`
	SiteID     uint64     `db:"site_id"`
	Lang       string     `db:"lang"`
	Slug       string     `db:"slug"`
	EntityType EntityType `db:"entity_type"`
	EntityID   uint64     `db:"entity_id"`
	IsActive   bool       `db:"is_active"`
	IsPrimary  bool       `db:"is_primary"`
	RedirectTo sql.NullInt64 `db:"redirect_to"`

	TgtID         sql.NullInt64  `db:"tgt_id"`
	TgtSlug       sql.NullString `db:"tgt_slug"`
	TgtEntityType sql.NullString `db:"tgt_entity_type"`
	TgtEntityID   sql.NullInt64  `db:"tgt_entity_id"`
	TgtActive     sql.NullBool   `db:"tgt_is_active"`
	TgtPrimary    sql.NullBool   `db:"tgt_is_primary"`
}

func (r slugRow) record() *SlugRecord {
	rec := &SlugRecord{
		ID:         r.ID,
		SiteID:     r.SiteID,
		Lang:       r.Lang,
		Slug:       r.Slug,
		EntityType: r.EntityType,
		EntityID:   r.EntityID,
		IsActive:   r.IsActive,
		IsPrimary:  r.IsPrimary,
		RedirectTo: uint64(r.RedirectTo.Int64),
	}
	if r.TgtID.Valid {
		rec.Target = &SlugRecord{
			ID:         uint64(r.TgtID.Int64),
			SiteID:     r.SiteID,
			Lang:       r.Lang,
			Slug:       r.TgtSlug.String,
			EntityType: EntityType(r.TgtEntityType.String),
			EntityID:   uint64(r.TgtEntityID.Int64),
			IsActive:   r.TgtActive.Bool,
			IsPrimary:  r.TgtPrimary.Bool,
		}
	}
	return rec
}

func (s *SQLStore) Slug(ctx context.Context, siteID uint64, lang, slug string) (*SlugRecord, error) {
	const q = `
        SELECT s.id, s.site_id, s.lang, s.slug, s.entity_type, s.entity_id,
               s.is_active, s.is_primary, s.redirect_to,
               t.id          AS tgt_id,
               t.slug        AS tgt_slug,
               t.entity_type AS tgt_entity_type,
               t.entity_id   AS tgt_entity_id,
               t.is_active   AS tgt_is_active,
               t.is_primary  AS tgt_is_primary
        FROM   slug s
        LEFT JOIN slug t ON t.id = s.redirect_to
        WHERE  s.site_id = ? AND s.lang = ? AND s.slug = ?
        LIMIT  1`
	var row slugRow
	if err := s.db.GetContext(ctx, &row, q, siteID, lang, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row.record(), nil
}

func (s *SQLStore) PrimarySlug(ctx context.Context, siteID uint64, lang string,
	entityType EntityType, entityID uint64) (*SlugRecord, error) {

	const q = `
        SELECT id, site_id, lang, slug, entity_type, entity_id,
               is_active, is_primary, redirect_to
        FROM   slug
        WHERE  site_id = ? AND lang = ?
          AND  entity_type = ? AND entity_id = ?
          AND  is_primary = 1 AND is_active = 1
          AND  redirect_to IS NULL
        LIMIT  1`
	var row slugRow
	if err := s.db.GetContext(ctx, &row, q, siteID, lang, entityType, entityID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row.record(), nil
}
