// internal/identity/rename_test.go
//
// Unit-tests for the write-side rename transaction using sqlmock: the
// demote-then-promote flow runs inside one transaction, and a slug string
// owned by another entity aborts with ErrSlugTaken.

package identity

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newRenameDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestRename_InsertsFreshPrimary(t *testing.T) {
	db, mock := newRenameDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(uint64(10), "en", "central-cafe").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`SET\s+is_primary = 0`).
		WithArgs(uint64(10), "en", EntityPlace, uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO slug`).
		WithArgs(uint64(10), "en", "central-cafe", EntityPlace, uint64(7)).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectCommit()

	got, err := Rename(context.Background(), db, 10, "en", EntityPlace, 7, "Central Cafe")
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if got != "central-cafe" {
		t.Fatalf("slug = %q, want central-cafe", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestRename_PromotesOwnDemotedRow(t *testing.T) {
	// Renaming back to a slug the entity used before reactivates that row
	// instead of inserting a duplicate.
	db, mock := newRenameDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(uint64(10), "en", "cafe-central").
		WillReturnRows(sqlmock.NewRows([]string{"id", "entity_type", "entity_id"}).
			AddRow(4, "place", 7))
	mock.ExpectExec(`SET\s+is_primary = 0`).
		WithArgs(uint64(10), "en", EntityPlace, uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`SET\s+is_primary = 1`).
		WithArgs(uint64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	got, err := Rename(context.Background(), db, 10, "en", EntityPlace, 7, "Cafe Central")
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if got != "cafe-central" {
		t.Fatalf("slug = %q, want cafe-central", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestEnsureSlug_ExistingPrimaryUntouched(t *testing.T) {
	db, mock := newRenameDB(t)

	mock.ExpectQuery(`is_primary = 1 AND is_active = 1`).
		WithArgs(uint64(10), "en", EntityPlace, uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"slug"}).AddRow("central-cafe"))

	got, err := EnsureSlug(context.Background(), db, 10, "en", EntityPlace, 7, "A Newer Title")
	if err != nil {
		t.Fatalf("EnsureSlug: %v", err)
	}
	if got != "central-cafe" {
		t.Fatalf("slug = %q, want existing central-cafe", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestEnsureSlug_CreatesWhenMissing(t *testing.T) {
	db, mock := newRenameDB(t)

	mock.ExpectQuery(`is_primary = 1 AND is_active = 1`).
		WithArgs(uint64(10), "en", EntityPlace, uint64(7)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(uint64(10), "en", "central-cafe").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`SET\s+is_primary = 0`).
		WithArgs(uint64(10), "en", EntityPlace, uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO slug`).
		WithArgs(uint64(10), "en", "central-cafe", EntityPlace, uint64(7)).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectCommit()

	got, err := EnsureSlug(context.Background(), db, 10, "en", EntityPlace, 7, "Central Cafe")
	if err != nil {
		t.Fatalf("EnsureSlug: %v", err)
	}
	if got != "central-cafe" {
		t.Fatalf("slug = %q, want central-cafe", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestRename_ConflictAborts(t *testing.T) {
	db, mock := newRenameDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(uint64(10), "en", "central-cafe").
		WillReturnRows(sqlmock.NewRows([]string{"id", "entity_type", "entity_id"}).
			AddRow(4, "event", 99)) // different entity owns the string
	mock.ExpectRollback()

	_, err := Rename(context.Background(), db, 10, "en", EntityPlace, 7, "Central Cafe")
	if !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("err = %v, want ErrSlugTaken", err)
	}
}

func TestSetRedirect_UpsertsPointer(t *testing.T) {
	db, mock := newRenameDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`WHERE\s+id = \?`).
		WithArgs(uint64(2), uint64(10), "en").
		WillReturnRows(sqlmock.NewRows([]string{"id", "entity_type", "entity_id"}).
			AddRow(2, "event", 55))
	mock.ExpectExec(`ON DUPLICATE KEY UPDATE`).
		WithArgs(uint64(10), "en", "wine-tour", EntityEvent, uint64(55), uint64(2)).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	if err := SetRedirect(context.Background(), db, 10, "en", "wine-tour", 2); err != nil {
		t.Fatalf("SetRedirect: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSetRedirect_MissingTargetAborts(t *testing.T) {
	// The target row must exist and be active; a dangling id rolls back
	// without touching the table.
	db, mock := newRenameDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`WHERE\s+id = \?`).
		WithArgs(uint64(99), uint64(10), "en").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	if err := SetRedirect(context.Background(), db, 10, "en", "wine-tour", 99); err == nil {
		t.Fatal("SetRedirect succeeded against a missing target")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
