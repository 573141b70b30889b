package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pswdapp/vaultcore/internal/logger"
	"github.com/pswdapp/vaultcore/models"
)

type keyRepository struct {
	*DB
	logger *logger.Logger
}

func NewKeyRepository(db *DB, logger *logger.Logger) KeyStore {
	return &keyRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *keyRepository) Put(ctx context.Context, kind models.KeyKind, blob []byte) error {
	log := logger.FromContext(ctx)

	if len(blob) == 0 {
		return fmt.Errorf("refusing to store empty blob for kind %q", kind)
	}

	if _, err := r.DB.ExecContext(ctx, upsertKeyMaterial, string(kind), blob); err != nil {
		log.Err(err).
			Str("func", "keyRepository.Put").
			Str("kind", string(kind)).
			Msg("failed to upsert key material")
		return fmt.Errorf("failed to save key material (kind=%s): %w", kind, err)
	}

	return nil
}

func (r *keyRepository) Get(ctx context.Context, kind models.KeyKind) ([]byte, error) {
	log := logger.FromContext(ctx)

	var blob []byte
	err := r.DB.QueryRowContext(ctx, getKeyMaterial, string(kind)).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("kind %s: %w", kind, ErrKeyNotFound)
	}
	if err != nil {
		log.Err(err).
			Str("func", "keyRepository.Get").
			Str("kind", string(kind)).
			Msg("failed to query key material")
		return nil, fmt.Errorf("failed to query key material (kind=%s): %w", kind, err)
	}

	return blob, nil
}

func (r *keyRepository) Delete(ctx context.Context, kind models.KeyKind) error {
	log := logger.FromContext(ctx)

	if _, err := r.DB.ExecContext(ctx, deleteKeyMaterial, string(kind)); err != nil {
		log.Err(err).
			Str("func", "keyRepository.Delete").
			Str("kind", string(kind)).
			Msg("failed to delete key material")
		return fmt.Errorf("failed to delete key material (kind=%s): %w", kind, err)
	}

	return nil
}

func (r *keyRepository) Clear(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if _, err := r.DB.ExecContext(ctx, clearKeyMaterial); err != nil {
		log.Err(err).
			Str("func", "keyRepository.Clear").
			Msg("failed to clear key material")
		return fmt.Errorf("failed to clear key material: %w", err)
	}

	log.Info().Str("func", "keyRepository.Clear").Msg("key material cleared")
	return nil
}
