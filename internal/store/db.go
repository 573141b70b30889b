package store

import (
	"database/sql"

	"github.com/pswdapp/vaultcore/internal/logger"
	"github.com/pswdapp/vaultcore/migrations"
)

type DB struct {
	*sql.DB
	logger *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
