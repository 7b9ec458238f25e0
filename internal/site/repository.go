// internal/site/repository.go
//
// Site-table query helpers.
//
// Context
// -------
// Read-only access to the **site** and **site_config** tables:
//
//   - `AllActive` — admin dashboards, cron jobs, batch reports.
//   - `ByID`      — cache loader on first hit after a resolution.
//   - `ConfigByID`— key-value settings, pulled once at load and cached
//     alongside the aggregate.
//
// Suspended or deleted rows are excluded at SQL level to keep callers
// simple.  Errors are returned verbatim so the caller can wrap or log
// them with the project logger.
//
// Notes
// -----
//   - Column list matches the fields in `Record`; update both together.
//   - Oxford commas, two spaces after periods.
package site

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// AllActive returns every site that is neither suspended nor deleted.
// Intended for admin dashboards or batch operations, not the public read
// path.
func AllActive(db *sqlx.DB) ([]Record, error) {
	const q = `
        SELECT id, name, default_lang, is_default,
               suspended_at, deleted_at, created_at, updated_at
        FROM   site
        WHERE  suspended_at IS NULL
          AND  deleted_at   IS NULL`
	var rows []Record
	if err := db.Select(&rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// ByID fetches a single site row that is not suspended or deleted.  The
// lookup respects request deadlines via the supplied context.Context.
func ByID(ctx context.Context, db *sqlx.DB, id uint64) (*Record, error) {
	const q = `
        SELECT id, name, default_lang, is_default,
               suspended_at, deleted_at, created_at, updated_at
        FROM   site
        WHERE  id = ?
          AND  suspended_at IS NULL
          AND  deleted_at   IS NULL
        LIMIT  1`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, id); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ConfigByID loads all rows from `site_config` for one site and returns
// them as a map[key]value.  Called once at aggregate load; the map is
// immutable afterwards.
func ConfigByID(ctx context.Context, db *sqlx.DB, siteID uint64) (map[string]string, error) {
	const q = `
	    SELECT  ` + "`key`, value" + `
	    FROM    site_config
	    WHERE   site_id = ?`

	// Small slice cap avoids reallocations when a site uses only a handful
	// of settings.  It grows automatically for larger sites.
	rows := make([]struct {
		Key   string `db:"key"`
		Value string `db:"value"`
	}, 0, 8)

	if err := db.SelectContext(ctx, &rows, q, siteID); err != nil {
		return nil, err
	}

	cfg := make(map[string]string, len(rows))
	for _, r := range rows {
		cfg[r.Key] = r.Value
	}
	return cfg, nil
}
