package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/pswdapp/vaultcore/internal/logger"
	"github.com/pswdapp/vaultcore/models"
)

func newTestKeyRepo(t *testing.T) (*keyRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &keyRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestKeyRepositoryPut_Success(t *testing.T) {
	repo, mock, db := newTestKeyRepo(t)
	defer db.Close()

	blob := []byte{0x01, 0x02, 0x03}

	mock.ExpectExec("INSERT INTO key_material").
		WithArgs(string(models.KeyKindEncryption), blob).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Put(context.Background(), models.KeyKindEncryption, blob); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestKeyRepositoryPut_RejectsEmptyBlob(t *testing.T) {
	repo, _, db := newTestKeyRepo(t)
	defer db.Close()

	err := repo.Put(context.Background(), models.KeyKindEncryption, nil)
	if err == nil || !strings.Contains(err.Error(), "empty blob") {
		t.Fatalf("expected empty blob error, got %v", err)
	}
}

func TestKeyRepositoryGet_Success(t *testing.T) {
	repo, mock, db := newTestKeyRepo(t)
	defer db.Close()

	blob := []byte{0xAA, 0xBB}

	rows := sqlmock.NewRows([]string{"blob"}).AddRow(blob)
	mock.ExpectQuery("SELECT blob").
		WithArgs(string(models.KeyKindDevice)).
		WillReturnRows(rows)

	got, err := repo.Get(context.Background(), models.KeyKindDevice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != string(blob) {
		t.Errorf("expected blob %v, got %v", blob, got)
	}
}

func TestKeyRepositoryGet_NotFound(t *testing.T) {
	repo, mock, db := newTestKeyRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT blob").
		WithArgs(string(models.KeyKindSigning)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), models.KeyKindSigning)
	if !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestKeyRepositoryGet_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestKeyRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT blob").
		WithArgs(sqlmock.AnyArg()).
		WillReturnError(errors.New("db network error"))

	_, err := repo.Get(context.Background(), models.KeyKindSigning)
	if err == nil || errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected wrapped DB error, got %v", err)
	}
}

func TestKeyRepositoryDelete_Success(t *testing.T) {
	repo, mock, db := newTestKeyRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM key_material").
		WithArgs(string(models.KeyKindDevice)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), models.KeyKindDevice); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestKeyRepositoryClear_Success(t *testing.T) {
	repo, mock, db := newTestKeyRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM key_material").
		WillReturnResult(sqlmock.NewResult(0, 5))

	if err := repo.Clear(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
