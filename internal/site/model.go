// internal/site/model.go
//
// `site` table row model.
//
// Context
// -------
// The `Record` struct mirrors one row in the persistent **site** table.
// Operational state is captured by two nullable timestamps:
//
//   - SuspendedAt – site is temporarily disabled (e.g., billing).
//   - DeletedAt   – site is permanently removed.
//
// Either timestamp being non-NULL prevents the lazy-loader from serving
// the site.  Sites are never hard-deleted in normal operation.
//
// Schema reference
//
//	CREATE TABLE site (
//	    id            BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
//	    name          VARCHAR(128)  NOT NULL,
//	    default_lang  VARCHAR(8)    NOT NULL DEFAULT 'en',
//	    is_default    TINYINT(1)    NOT NULL DEFAULT 0,
//	    suspended_at  TIMESTAMP NULL,
//	    deleted_at    TIMESTAMP NULL,
//	    created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
//	    updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
//	);
//
// Notes
// -----
// • Nullable timestamps are `*time.Time`; callers must nil-check before use.
// • This struct contains no behaviour—pure data model for sqlx scans.
package site

import "time"

// Record mirrors one row in the `site` table.
type Record struct {
	ID          uint64     `db:"id"`
	Name        string     `db:"name"`
	DefaultLang string     `db:"default_lang"`
	IsDefault   bool       `db:"is_default"`
	SuspendedAt *time.Time `db:"suspended_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}
