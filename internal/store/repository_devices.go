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

type deviceRepository struct {
	*DB
	logger *logger.Logger
}

func NewDeviceRepository(db *DB, logger *logger.Logger) DeviceStore {
	return &deviceRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *deviceRepository) SaveDevice(ctx context.Context, device models.DeviceIdentity) error {
	log := logger.FromContext(ctx)

	createdAt := device.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.DB.ExecContext(ctx, upsertDevice,
		device.DeviceID,
		device.UserID,
		device.Name,
		device.Fingerprint,
		device.PublicDeviceKey,
		device.IsMaster,
		device.IsSelf,
		string(device.Status),
		nullableTime(device.LastSeen),
		createdAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "deviceRepository.SaveDevice").
			Str("device_id", device.DeviceID).
			Msg("failed to upsert device")
		return fmt.Errorf("failed to save device (device_id=%s): %w", device.DeviceID, err)
	}

	return nil
}

func (r *deviceRepository) Self(ctx context.Context) (models.DeviceIdentity, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getSelfDevice)
	device, err := scanDevice(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DeviceIdentity{}, fmt.Errorf("self device: %w", ErrDeviceNotFound)
	}
	if err != nil {
		log.Err(err).
			Str("func", "deviceRepository.Self").
			Msg("failed to query self device")
		return models.DeviceIdentity{}, fmt.Errorf("failed to query self device: %w", err)
	}

	return device, nil
}

func (r *deviceRepository) ListDevices(ctx context.Context) ([]models.DeviceIdentity, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listDevices)
	if err != nil {
		log.Err(err).
			Str("func", "deviceRepository.ListDevices").
			Msg("failed to query devices")
		return nil, fmt.Errorf("failed to query devices: %w", err)
	}
	defer rows.Close()

	var devices []models.DeviceIdentity
	for rows.Next() {
		device, scanErr := scanDevice(rows.Scan)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "deviceRepository.ListDevices").
				Msg("failed to scan device row")
			return nil, fmt.Errorf("failed to scan device row: %w", scanErr)
		}
		devices = append(devices, device)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate device rows: %w", err)
	}

	return devices, nil
}

// SetMaster promotes deviceID to master and demotes every other device in
// the same transaction, so a reader can never observe zero or two masters.
func (r *deviceRepository) SetMaster(ctx context.Context, deviceID string) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "deviceRepository.SetMaster").
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, demoteMasterDevices); err != nil {
		log.Err(err).
			Str("func", "deviceRepository.SetMaster").
			Msg("failed to demote master devices")
		return fmt.Errorf("failed to demote master devices: %w", err)
	}

	res, err := tx.ExecContext(ctx, promoteMasterDevice, deviceID)
	if err != nil {
		log.Err(err).
			Str("func", "deviceRepository.SetMaster").
			Str("device_id", deviceID).
			Msg("failed to promote master device")
		return fmt.Errorf("failed to promote master device: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("device %s: %w", deviceID, ErrDeviceNotFound)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "deviceRepository.SetMaster").
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (r *deviceRepository) SetStatus(ctx context.Context, deviceID string, status models.DeviceStatus) error {
	log := logger.FromContext(ctx)

	res, err := r.DB.ExecContext(ctx, setDeviceStatus, deviceID, string(status))
	if err != nil {
		log.Err(err).
			Str("func", "deviceRepository.SetStatus").
			Str("device_id", deviceID).
			Msg("failed to update device status")
		return fmt.Errorf("failed to update device status: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("device %s: %w", deviceID, ErrDeviceNotFound)
	}

	return nil
}

func (r *deviceRepository) Touch(ctx context.Context, deviceID string, at time.Time) error {
	log := logger.FromContext(ctx)

	res, err := r.DB.ExecContext(ctx, touchDevice, deviceID, at.UTC())
	if err != nil {
		log.Err(err).
			Str("func", "deviceRepository.Touch").
			Str("device_id", deviceID).
			Msg("failed to update last_seen")
		return fmt.Errorf("failed to update last_seen: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("device %s: %w", deviceID, ErrDeviceNotFound)
	}

	return nil
}

// scanDevice reads one device row through the given scan function, shared
// between QueryRow and Rows iteration.
func scanDevice(scan func(dest ...any) error) (models.DeviceIdentity, error) {
	var (
		device   models.DeviceIdentity
		status   string
		lastSeen sql.NullTime
	)
	err := scan(
		&device.DeviceID,
		&device.UserID,
		&device.Name,
		&device.Fingerprint,
		&device.PublicDeviceKey,
		&device.IsMaster,
		&device.IsSelf,
		&status,
		&lastSeen,
		&device.CreatedAt,
	)
	if err != nil {
		return models.DeviceIdentity{}, err
	}

	device.Status = models.DeviceStatus(status)
	if lastSeen.Valid {
		device.LastSeen = lastSeen.Time
	}
	return device, nil
}

// nullableTime maps the zero time to NULL so "never seen" stays NULL in
// the table.
func nullableTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
