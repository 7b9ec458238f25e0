// internal/content/repository.go
//
// Localized-text lookups against `entity_translation`.
//
// Context
// -------
// The read path fetches every language row for one entity in a single
// query, then picks the language to serve with the shared i18n fallback
// rule.  One query keeps the language pick in process and the row count is
// bounded by the supported-language list.
package content

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/atlas/internal/identity"
)

// Repo reads entity translations from the control-plane pool.
type Repo struct {
	db *sqlx.DB
}

// NewRepo wraps db.
func NewRepo(db *sqlx.DB) *Repo { return &Repo{db: db} }

// ByEntity returns all translations of one entity keyed by language.  An
// entity with no rows yields an empty map, not an error.
func (r *Repo) ByEntity(ctx context.Context, et identity.EntityType, id uint64) (map[string]Translation, error) {
	const q = `
        SELECT entity_type, entity_id, lang, title,
               COALESCE(summary, '') AS summary,
               COALESCE(body, '')    AS body
        FROM   entity_translation
        WHERE  entity_type = ? AND entity_id = ?`
	var rows []Translation
	if err := r.db.SelectContext(ctx, &rows, q, et, id); err != nil {
		return nil, err
	}

	out := make(map[string]Translation, len(rows))
	for _, t := range rows {
		out[t.Lang] = t
	}
	return out, nil
}
