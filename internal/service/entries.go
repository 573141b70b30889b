package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pswdapp/vaultcore/internal/adapter"
	"github.com/pswdapp/vaultcore/internal/crypto"
	"github.com/pswdapp/vaultcore/internal/logger"
	"github.com/pswdapp/vaultcore/internal/store"
	"github.com/pswdapp/vaultcore/internal/utils"
	"github.com/pswdapp/vaultcore/internal/validators"
	"github.com/pswdapp/vaultcore/models"
)

type entryService struct {
	keychain  crypto.KeyChain
	stores    *store.Storages
	registry  adapter.RegistryClient
	session   *session
	validator validators.EntryValidator
	ids       *utils.UUIDGenerator
	logger    *logger.Logger
}

func newEntryService(
	keychain crypto.KeyChain,
	stores *store.Storages,
	registry adapter.RegistryClient,
	sess *session,
	validator validators.EntryValidator,
	ids *utils.UUIDGenerator,
	log *logger.Logger,
) *entryService {
	return &entryService{
		keychain:  keychain,
		stores:    stores,
		registry:  registry,
		session:   sess,
		validator: validator,
		ids:       ids,
		logger:    log,
	}
}

// requireApproved refuses vault operations on a device that is still
// pending approval or has no account at all. A capability error, never a
// crash.
func (e *entryService) requireApproved(ctx context.Context) error {
	self, err := e.stores.Devices.Self(ctx)
	if err != nil {
		if errors.Is(err, store.ErrDeviceNotFound) {
			return ErrKeyMaterialAbsent
		}
		return fmt.Errorf("device check: %w", err)
	}
	if self.Status != models.DeviceApproved {
		return ErrDeviceNotApproved
	}
	return nil
}

// Create implements [EntryService]. The local cache is written before the
// registry upload, so an upload failure leaves the entry recoverable on
// this device.
func (e *entryService) Create(ctx context.Context, title, entryType string, payload models.EntryPayload) (models.VaultEntry, error) {
	if err := e.requireApproved(ctx); err != nil {
		return models.VaultEntry{}, err
	}
	if err := e.validator.Validate(title, entryType, payload); err != nil {
		return models.VaultEntry{}, err
	}

	entryID := e.ids.Generate()
	sealed, err := e.seal(entryID, payload)
	if err != nil {
		return models.VaultEntry{}, err
	}

	now := time.Now()
	entry := models.VaultEntry{
		EntryID:          entryID,
		Title:            title,
		EntryType:        entryType,
		EncryptedPayload: sealed,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err = e.stores.Entries.SaveEntry(ctx, entry); err != nil {
		return models.VaultEntry{}, fmt.Errorf("create entry: %w", err)
	}
	if err = e.registry.CreateEntry(ctx, entry); err != nil {
		return models.VaultEntry{}, fmt.Errorf("upload entry: %w", mapAdapterError(err))
	}

	e.logger.Info().Str("func", "entries.Create").Str("entry_id", entryID).Str("entry_type", entryType).Msg("entry created")
	return entry, nil
}

// Get implements [EntryService].
func (e *entryService) Get(ctx context.Context, entryID string) (models.VaultEntry, models.EntryPayload, error) {
	if err := e.requireApproved(ctx); err != nil {
		return models.VaultEntry{}, models.EntryPayload{}, err
	}

	entry, err := e.stores.Entries.Entry(ctx, entryID)
	if err != nil {
		return models.VaultEntry{}, models.EntryPayload{}, fmt.Errorf("get entry: %w", err)
	}

	payload, err := e.open(entry)
	if err != nil {
		return models.VaultEntry{}, models.EntryPayload{}, err
	}
	return entry, payload, nil
}

// GetByTitle implements [EntryService].
func (e *entryService) GetByTitle(ctx context.Context, title string) (models.VaultEntry, models.EntryPayload, error) {
	if err := e.requireApproved(ctx); err != nil {
		return models.VaultEntry{}, models.EntryPayload{}, err
	}

	entry, err := e.stores.Entries.EntryByTitle(ctx, title)
	if err != nil {
		return models.VaultEntry{}, models.EntryPayload{}, fmt.Errorf("get entry: %w", err)
	}

	payload, err := e.open(entry)
	if err != nil {
		return models.VaultEntry{}, models.EntryPayload{}, err
	}
	return entry, payload, nil
}

// List implements [EntryService]. No decryption happens here; titles and
// types are stored in clear exactly so listing works without touching key
// material.
func (e *entryService) List(ctx context.Context) ([]models.VaultEntry, error) {
	if err := e.requireApproved(ctx); err != nil {
		return nil, err
	}

	entries, err := e.stores.Entries.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// Update implements [EntryService].
func (e *entryService) Update(ctx context.Context, entryID, title, entryType string, payload models.EntryPayload) error {
	if err := e.requireApproved(ctx); err != nil {
		return err
	}
	if err := e.validator.Validate(title, entryType, payload); err != nil {
		return err
	}

	existing, err := e.stores.Entries.Entry(ctx, entryID)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}

	sealed, err := e.seal(entryID, payload)
	if err != nil {
		return err
	}

	existing.Title = title
	existing.EntryType = entryType
	existing.EncryptedPayload = sealed
	existing.UpdatedAt = time.Now()

	if err = e.stores.Entries.SaveEntry(ctx, existing); err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	if err = e.registry.UpdateEntry(ctx, existing); err != nil {
		return fmt.Errorf("upload entry update: %w", mapAdapterError(err))
	}
	return nil
}

// Delete implements [EntryService]. An entry already gone from the registry
// is not an error; the intent was deletion.
func (e *entryService) Delete(ctx context.Context, entryID string) error {
	if err := e.requireApproved(ctx); err != nil {
		return err
	}

	if err := e.stores.Entries.DeleteEntry(ctx, entryID); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if err := e.registry.DeleteEntry(ctx, entryID); err != nil && !errors.Is(err, adapter.ErrNotFound) {
		return fmt.Errorf("delete entry on registry: %w", mapAdapterError(err))
	}
	return nil
}

// Refresh implements [EntryService].
func (e *entryService) Refresh(ctx context.Context) error {
	if err := e.requireApproved(ctx); err != nil {
		return err
	}

	entries, err := e.registry.ListEntries(ctx)
	if err != nil {
		return fmt.Errorf("refresh entries: %w", mapAdapterError(err))
	}
	for _, entry := range entries {
		if err = e.stores.Entries.SaveEntry(ctx, entry); err != nil {
			return fmt.Errorf("refresh entries: cache %s: %w", entry.EntryID, err)
		}
	}

	e.logger.Info().Str("func", "entries.Refresh").Int("count", len(entries)).Msg("local entry cache refreshed")
	return nil
}

// seal encrypts payload under a fresh entry key, bound to its entry id via
// the AEAD associated data so ciphertexts cannot be swapped between rows.
func (e *entryService) seal(entryID string, payload models.EntryPayload) ([]byte, error) {
	key, err := e.session.EntryKey()
	if err != nil {
		return nil, err
	}
	defer crypto.Zero(key)

	plain, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	defer crypto.Zero(plain)

	sealed, err := e.keychain.SealEntry(key, plain, []byte(entryID))
	if err != nil {
		return nil, fmt.Errorf("seal entry: %w", err)
	}
	return sealed, nil
}

// open decrypts an entry payload. Decrypt failures surface as
// [crypto.ErrDecrypt] so the caller can offer a retry or re-unlock instead
// of crashing.
func (e *entryService) open(entry models.VaultEntry) (models.EntryPayload, error) {
	key, err := e.session.EntryKey()
	if err != nil {
		return models.EntryPayload{}, err
	}
	defer crypto.Zero(key)

	plain, err := e.keychain.OpenEntry(key, entry.EncryptedPayload, []byte(entry.EntryID))
	if err != nil {
		return models.EntryPayload{}, fmt.Errorf("open entry %s: %w", entry.EntryID, err)
	}
	defer crypto.Zero(plain)

	var payload models.EntryPayload
	if err = json.Unmarshal(plain, &payload); err != nil {
		return models.EntryPayload{}, fmt.Errorf("decode payload: %w", err)
	}
	return payload, nil
}
