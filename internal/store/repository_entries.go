package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pswdapp/vaultcore/internal/logger"
	"github.com/pswdapp/vaultcore/models"
)

type entryRepository struct {
	*DB
	logger *logger.Logger
}

func NewEntryRepository(db *DB, logger *logger.Logger) EntryStore {
	return &entryRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *entryRepository) SaveEntry(ctx context.Context, entry models.VaultEntry) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, upsertEntry,
		entry.EntryID,
		entry.UserID,
		entry.Title,
		entry.EntryType,
		entry.EncryptedPayload,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "entryRepository.SaveEntry").
			Str("entry_id", entry.EntryID).
			Msg("failed to upsert vault entry")
		return fmt.Errorf("failed to save vault entry (entry_id=%s): %w", entry.EntryID, err)
	}

	return nil
}

func (r *entryRepository) Entry(ctx context.Context, entryID string) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getEntry, entryID)
	entry, err := scanEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.VaultEntry{}, fmt.Errorf("entry %s: %w", entryID, ErrEntryNotFound)
	}
	if err != nil {
		log.Err(err).
			Str("func", "entryRepository.Entry").
			Str("entry_id", entryID).
			Msg("failed to query vault entry")
		return models.VaultEntry{}, fmt.Errorf("failed to query vault entry: %w", err)
	}

	return entry, nil
}

func (r *entryRepository) EntryByTitle(ctx context.Context, title string) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getEntryByTitle, title)
	entry, err := scanEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.VaultEntry{}, fmt.Errorf("entry %q: %w", title, ErrEntryNotFound)
	}
	if err != nil {
		log.Err(err).
			Str("func", "entryRepository.EntryByTitle").
			Str("title", title).
			Msg("failed to query vault entry by title")
		return models.VaultEntry{}, fmt.Errorf("failed to query vault entry by title: %w", err)
	}

	return entry, nil
}

func (r *entryRepository) ListEntries(ctx context.Context) ([]models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listEntries)
	if err != nil {
		log.Err(err).
			Str("func", "entryRepository.ListEntries").
			Msg("failed to query vault entries")
		return nil, fmt.Errorf("failed to query vault entries: %w", err)
	}
	defer rows.Close()

	var entries []models.VaultEntry
	for rows.Next() {
		entry, scanErr := scanEntry(rows.Scan)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "entryRepository.ListEntries").
				Msg("failed to scan vault entry row")
			return nil, fmt.Errorf("failed to scan vault entry row: %w", scanErr)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vault entry rows: %w", err)
	}

	return entries, nil
}

func (r *entryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	log := logger.FromContext(ctx)

	res, err := r.DB.ExecContext(ctx, softDeleteEntry, entryID, time.Now().UTC())
	if err != nil {
		log.Err(err).
			Str("func", "entryRepository.DeleteEntry").
			Str("entry_id", entryID).
			Msg("failed to delete vault entry")
		return fmt.Errorf("failed to delete vault entry: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("entry %s: %w", entryID, ErrEntryNotFound)
	}

	return nil
}

func scanEntry(scan func(dest ...any) error) (models.VaultEntry, error) {
	var entry models.VaultEntry
	err := scan(
		&entry.EntryID,
		&entry.UserID,
		&entry.Title,
		&entry.EntryType,
		&entry.EncryptedPayload,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return models.VaultEntry{}, err
	}
	return entry, nil
}
