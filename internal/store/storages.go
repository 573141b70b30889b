package store

import (
	"context"
	"fmt"

	"github.com/pswdapp/vaultcore/internal/config"
	"github.com/pswdapp/vaultcore/internal/logger"
)

// Storages groups the local storage repositories into a single value that
// can be passed around the service layer.
type Storages struct {
	// Keys holds wrapped private keys plus the non-secret key-management
	// rows (salts, KDF params, install id, cached account).
	Keys KeyStore

	// Devices is the local device table: this installation plus cached
	// peers.
	Devices DeviceStore

	// Entries is the local cache of encrypted vault entries.
	Entries EntryStore
}

// NewStorages initialises the local storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs and returns a [Storages] value wired to fresh
//     repositories.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewStorages(cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		Keys:    NewKeyRepository(db, logger),
		Devices: NewDeviceRepository(db, logger),
		Entries: NewEntryRepository(db, logger),
	}, nil
}
