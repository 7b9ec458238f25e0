// internal/identity/rename.go
//
// Write-side slug maintenance.
//
// Context
// -------
// The read path assumes at most one active, non-redirecting, primary slug
// per (site, lang, entityType, entityId).  That invariant is maintained
// here, in single transactions: Rename demotes the current primary and
// promotes (or inserts) the new one, and SetRedirect points an arbitrary
// slug string at an existing canonical row.  Old rows are demoted, never
// deleted, so stale URLs keep resolving through the non-primary fallback.
//
// Concurrent readers may observe the pre- or post-rename state, never a
// torn one; the next request self-corrects through a redirect.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yanizio/atlas/internal/slugify"
)

// ErrSlugTaken is returned when the wanted slug string already names a
// different entity in the same (site, lang) namespace.
var ErrSlugTaken = errors.New("identity: slug already in use by another entity")

// Rename gives an entity a new primary slug derived from title, demoting
// the previous primary in the same transaction.  The first call for an
// entity simply inserts its primary slug, so entity creation uses the same
// path.  Returns the slug string that was promoted.
func Rename(ctx context.Context, db *sqlx.DB, siteID uint64, lang string,
	entityType EntityType, entityID uint64, title string) (string, error) {

	newSlug := slugify.Make(title)

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	// The wanted string may already exist: as this entity's own demoted
	// slug (rename back), or as another entity's — which is a conflict.
	const find = `
        SELECT id, entity_type, entity_id
        FROM   slug
        WHERE  site_id = ? AND lang = ? AND slug = ?
        LIMIT  1
        FOR UPDATE`
	var existing struct {
		ID         uint64     `db:"id"`
		EntityType EntityType `db:"entity_type"`
		EntityID   uint64     `db:"entity_id"`
	}
	err = tx.GetContext(ctx, &existing, find, siteID, lang, newSlug)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// fresh string, insert below
	case err != nil:
		return "", err
	case existing.EntityType != entityType || existing.EntityID != entityID:
		return "", fmt.Errorf("%w: %q", ErrSlugTaken, newSlug)
	}

	const demote = `
        UPDATE slug
        SET    is_primary = 0
        WHERE  site_id = ? AND lang = ?
          AND  entity_type = ? AND entity_id = ?
          AND  is_primary = 1`
	if _, err := tx.ExecContext(ctx, demote, siteID, lang, entityType, entityID); err != nil {
		return "", err
	}

	if existing.ID != 0 {
		const promote = `
            UPDATE slug
            SET    is_primary = 1, is_active = 1, redirect_to = NULL
            WHERE  id = ?`
		if _, err := tx.ExecContext(ctx, promote, existing.ID); err != nil {
			return "", err
		}
	} else {
		const insert = `
            INSERT INTO slug
                (site_id, lang, slug, entity_type, entity_id,
                 is_active, is_primary, redirect_to)
            VALUES (?, ?, ?, ?, ?, 1, 1, NULL)`
		if _, err := tx.ExecContext(ctx, insert, siteID, lang, newSlug, entityType, entityID); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	zap.L().Info("slug promoted",
		zap.Uint64("site_id", siteID),
		zap.String("lang", lang),
		zap.String("entity_type", string(entityType)),
		zap.Uint64("entity_id", entityID),
		zap.String("slug", newSlug))
	return newSlug, nil
}

// EnsureSlug guarantees an entity has a primary slug, deriving one from
// title when none exists yet.  An existing primary is returned untouched,
// so the call is safe to repeat on every entity save.
func EnsureSlug(ctx context.Context, db *sqlx.DB, siteID uint64, lang string,
	entityType EntityType, entityID uint64, title string) (string, error) {

	const q = `
        SELECT slug
        FROM   slug
        WHERE  site_id = ? AND lang = ?
          AND  entity_type = ? AND entity_id = ?
          AND  is_primary = 1 AND is_active = 1
        LIMIT  1`
	var current string
	err := db.GetContext(ctx, &current, q, siteID, lang, entityType, entityID)
	switch {
	case err == nil:
		return current, nil
	case errors.Is(err, sql.ErrNoRows):
		return Rename(ctx, db, siteID, lang, entityType, entityID, title)
	default:
		return "", err
	}
}

// SetRedirect upserts fromSlug as an explicit redirect to the slug row
// toID.  The target must exist and be active; its entity columns are
// copied onto the redirecting row so scans stay consistent.
func SetRedirect(ctx context.Context, db *sqlx.DB, siteID uint64, lang, fromSlug string, toID uint64) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const target = `
        SELECT id, entity_type, entity_id
        FROM   slug
        WHERE  id = ? AND site_id = ? AND lang = ? AND is_active = 1
        LIMIT  1`
	var tgt struct {
		ID         uint64     `db:"id"`
		EntityType EntityType `db:"entity_type"`
		EntityID   uint64     `db:"entity_id"`
	}
	if err := tx.GetContext(ctx, &tgt, target, toID, siteID, lang); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("identity: redirect target %d not found or inactive", toID)
		}
		return err
	}

	const upsert = `
        INSERT INTO slug
            (site_id, lang, slug, entity_type, entity_id,
             is_active, is_primary, redirect_to)
        VALUES (?, ?, ?, ?, ?, 1, 0, ?)
        ON DUPLICATE KEY UPDATE
            entity_type = VALUES(entity_type),
            entity_id   = VALUES(entity_id),
            is_active   = 1,
            is_primary  = 0,
            redirect_to = VALUES(redirect_to)`
	if _, err := tx.ExecContext(ctx, upsert,
		siteID, lang, fromSlug, tgt.EntityType, tgt.EntityID, tgt.ID); err != nil {
		return err
	}

	return tx.Commit()
}
