// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 pswdapp

package store

const (
	upsertKeyMaterial = `
		INSERT INTO key_material (kind, blob, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (kind) DO UPDATE SET
			blob       = excluded.blob,
			updated_at = CURRENT_TIMESTAMP;`

	getKeyMaterial = `
		SELECT blob
		FROM key_material
		WHERE kind = $1;`

	deleteKeyMaterial = `
		DELETE FROM key_material
		WHERE kind = $1;`

	clearKeyMaterial = `
		DELETE FROM key_material;`

	upsertDevice = `
		INSERT INTO device_identity (
			device_id,
			user_id,
			name,
			fingerprint,
			pk_device,
			is_master,
			is_self,
			status,
			last_seen,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (device_id) DO UPDATE SET
			user_id     = excluded.user_id,
			name        = excluded.name,
			fingerprint = excluded.fingerprint,
			pk_device   = excluded.pk_device,
			is_master   = excluded.is_master,
			is_self     = excluded.is_self,
			status      = excluded.status,
			last_seen   = excluded.last_seen;`

	getSelfDevice = `
		SELECT
			device_id,
			user_id,
			name,
			fingerprint,
			pk_device,
			is_master,
			is_self,
			status,
			last_seen,
			created_at
		FROM device_identity
		WHERE is_self = 1;`

	listDevices = `
		SELECT
			device_id,
			user_id,
			name,
			fingerprint,
			pk_device,
			is_master,
			is_self,
			status,
			last_seen,
			created_at
		FROM device_identity
		ORDER BY created_at;`

	demoteMasterDevices = `
		UPDATE device_identity
		SET is_master = 0
		WHERE is_master = 1;`

	promoteMasterDevice = `
		UPDATE device_identity
		SET is_master = 1, status = 'approved'
		WHERE device_id = $1;`

	setDeviceStatus = `
		UPDATE device_identity
		SET status = $2
		WHERE device_id = $1;`

	touchDevice = `
		UPDATE device_identity
		SET last_seen = $2
		WHERE device_id = $1;`

	upsertEntry = `
		INSERT INTO vault_entries (
			entry_id,
			user_id,
			title,
			entry_type,
			encrypted_data,
			created_at,
			updated_at,
			deleted
		) VALUES ($1, $2, $3, $4, $5, $6, $7, 0)
		ON CONFLICT (entry_id) DO UPDATE SET
			title          = excluded.title,
			entry_type     = excluded.entry_type,
			encrypted_data = excluded.encrypted_data,
			updated_at     = excluded.updated_at,
			deleted        = 0;`

	getEntry = `
		SELECT
			entry_id,
			user_id,
			title,
			entry_type,
			encrypted_data,
			created_at,
			updated_at
		FROM vault_entries
		WHERE entry_id = $1 AND deleted = 0;`

	getEntryByTitle = `
		SELECT
			entry_id,
			user_id,
			title,
			entry_type,
			encrypted_data,
			created_at,
			updated_at
		FROM vault_entries
		WHERE title = $1 AND deleted = 0
		ORDER BY updated_at DESC
		LIMIT 1;`

	listEntries = `
		SELECT
			entry_id,
			user_id,
			title,
			entry_type,
			encrypted_data,
			created_at,
			updated_at
		FROM vault_entries
		WHERE deleted = 0
		ORDER BY title;`

	softDeleteEntry = `
		UPDATE vault_entries
		SET deleted = 1, updated_at = $2
		WHERE entry_id = $1 AND deleted = 0;`
)
