package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pswdapp/vaultcore/internal/adapter"
	"github.com/pswdapp/vaultcore/internal/config"
	"github.com/pswdapp/vaultcore/internal/logger"
	"github.com/pswdapp/vaultcore/internal/store"
	"github.com/pswdapp/vaultcore/models"
)

// testConfig keeps the Argon2id cost at the safety floor so the suite stays
// fast while still exercising the real derivation path.
func testConfig(deviceName string) *config.StructuredConfig {
	return &config.StructuredConfig{
		Vault: config.Vault{
			KDFTime:      1,
			KDFMemoryKiB: 8 * 1024,
			KDFThreads:   1,
			DeviceName:   deviceName,
		},
		Workers: config.Workers{
			AutoLockAfter: time.Minute,
			ApprovalPoll:  5 * time.Millisecond,
		},
	}
}

// env is one simulated device: its own local storage and services, usually
// sharing a fakeRegistry with other devices.
type env struct {
	storages *store.Storages
	registry *fakeRegistry
	services *Services
}

func newEnv(t *testing.T, reg *fakeRegistry, deviceName string) *env {
	t.Helper()
	if reg == nil {
		reg = newFakeRegistry()
	}
	storages := &store.Storages{
		Keys:    newFakeKeyStore(),
		Devices: newFakeDeviceStore(),
		Entries: newFakeEntryStore(),
	}
	svcs := NewServices(storages, reg, testConfig(deviceName), logger.Nop())
	t.Cleanup(svcs.Session.Close)
	return &env{storages: storages, registry: reg, services: svcs}
}

// ── local store fakes ────────────────────────────────────────────────────────

type fakeKeyStore struct {
	mu   sync.Mutex
	rows map[models.KeyKind][]byte
}

func newFakeKeyStore() *fakeKeyStore {
	return &fakeKeyStore{rows: make(map[models.KeyKind][]byte)}
}

func (f *fakeKeyStore) Put(_ context.Context, kind models.KeyKind, blob []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[kind] = append([]byte(nil), blob...)
	return nil
}

func (f *fakeKeyStore) Get(_ context.Context, kind models.KeyKind) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	blob, ok := f.rows[kind]
	if !ok {
		return nil, store.ErrKeyNotFound
	}
	return append([]byte(nil), blob...), nil
}

func (f *fakeKeyStore) Delete(_ context.Context, kind models.KeyKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, kind)
	return nil
}

func (f *fakeKeyStore) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = make(map[models.KeyKind][]byte)
	return nil
}

type fakeDeviceStore struct {
	mu      sync.Mutex
	devices map[string]models.DeviceIdentity
}

func newFakeDeviceStore() *fakeDeviceStore {
	return &fakeDeviceStore{devices: make(map[string]models.DeviceIdentity)}
}

func (f *fakeDeviceStore) SaveDevice(_ context.Context, device models.DeviceIdentity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.devices[device.DeviceID] = device
	return nil
}

func (f *fakeDeviceStore) Self(_ context.Context) (models.DeviceIdentity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.devices {
		if d.IsSelf {
			return d, nil
		}
	}
	return models.DeviceIdentity{}, store.ErrDeviceNotFound
}

func (f *fakeDeviceStore) ListDevices(_ context.Context) ([]models.DeviceIdentity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.DeviceIdentity, 0, len(f.devices))
	for _, d := range f.devices {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDeviceStore) SetMaster(_ context.Context, deviceID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.devices[deviceID]; !ok {
		return store.ErrDeviceNotFound
	}
	for id, d := range f.devices {
		d.IsMaster = id == deviceID
		f.devices[id] = d
	}
	return nil
}

func (f *fakeDeviceStore) SetStatus(_ context.Context, deviceID string, status models.DeviceStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.devices[deviceID]
	if !ok {
		return store.ErrDeviceNotFound
	}
	d.Status = status
	f.devices[deviceID] = d
	return nil
}

func (f *fakeDeviceStore) Touch(_ context.Context, deviceID string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.devices[deviceID]
	if !ok {
		return store.ErrDeviceNotFound
	}
	d.LastSeen = at
	f.devices[deviceID] = d
	return nil
}

type fakeEntryStore struct {
	mu      sync.Mutex
	entries map[string]models.VaultEntry
}

func newFakeEntryStore() *fakeEntryStore {
	return &fakeEntryStore{entries: make(map[string]models.VaultEntry)}
}

func (f *fakeEntryStore) SaveEntry(_ context.Context, entry models.VaultEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[entry.EntryID] = entry
	return nil
}

func (f *fakeEntryStore) Entry(_ context.Context, entryID string) (models.VaultEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[entryID]
	if !ok {
		return models.VaultEntry{}, store.ErrEntryNotFound
	}
	return e, nil
}

func (f *fakeEntryStore) EntryByTitle(_ context.Context, title string) (models.VaultEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.Title == title {
			return e, nil
		}
	}
	return models.VaultEntry{}, store.ErrEntryNotFound
}

func (f *fakeEntryStore) ListEntries(_ context.Context) ([]models.VaultEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.VaultEntry, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEntryStore) DeleteEntry(_ context.Context, entryID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entries[entryID]; !ok {
		return store.ErrEntryNotFound
	}
	delete(f.entries, entryID)
	return nil
}

// ── registry fake ────────────────────────────────────────────────────────────

type fakeAccount struct {
	userID   string
	verifier string
	profile  models.Account
}

// fakeRegistry is an in-memory registry shared between device envs so that
// multi-device flows run end to end without a network.
type fakeRegistry struct {
	mu       sync.Mutex
	token    string
	nextID   int
	accounts map[string]fakeAccount
	devices  map[string]models.DeviceIdentity
	grants   map[string]models.ProvisionDelivery
	entries  map[string]models.VaultEntry
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		accounts: make(map[string]fakeAccount),
		devices:  make(map[string]models.DeviceIdentity),
		grants:   make(map[string]models.ProvisionDelivery),
		entries:  make(map[string]models.VaultEntry),
	}
}

func (f *fakeRegistry) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeRegistry) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeRegistry) Register(_ context.Context, req models.RegisterRequest) (models.RegisterResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.accounts[req.Username]; exists {
		return models.RegisterResponse{}, fmt.Errorf("%w: username taken", adapter.ErrConflict)
	}

	f.nextID++
	userID := fmt.Sprintf("user-%d", f.nextID)
	f.accounts[req.Username] = fakeAccount{
		userID:   userID,
		verifier: req.Password,
		profile: models.Account{
			UserID:                 userID,
			Username:               req.Username,
			Email:                  req.Email,
			PublicEncryptionKey:    req.PublicEncryptionKey,
			PublicSigningKey:       req.PublicSigningKey,
			MasterDeviceRegistered: true,
		},
	}

	f.nextID++
	deviceID := fmt.Sprintf("dev-%d", f.nextID)
	f.devices[deviceID] = models.DeviceIdentity{
		DeviceID:        deviceID,
		UserID:          userID,
		Name:            req.DeviceName,
		Fingerprint:     req.Fingerprint,
		PublicDeviceKey: req.PublicDeviceKey,
		IsMaster:        true,
		Status:          models.DeviceApproved,
	}

	f.token = "token-" + userID
	return models.RegisterResponse{
		UserID:   userID,
		Username: req.Username,
		Token:    f.token,
		DeviceID: deviceID,
		IsMaster: true,
	}, nil
}

func (f *fakeRegistry) Login(_ context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	account, ok := f.accounts[req.Username]
	if !ok || account.verifier != req.Password {
		return models.LoginResponse{}, fmt.Errorf("%w: bad credentials", adapter.ErrUnauthorized)
	}

	for _, d := range f.devices {
		if d.Fingerprint != req.Fingerprint {
			continue
		}
		if d.Status != models.DeviceApproved {
			return models.LoginResponse{}, fmt.Errorf("%w: device pending", adapter.ErrDeviceNotApproved)
		}
		f.token = "token-" + account.userID
		return models.LoginResponse{
			UserID:   account.userID,
			Username: req.Username,
			Token:    f.token,
			DeviceID: d.DeviceID,
			IsMaster: d.IsMaster,
		}, nil
	}
	return models.LoginResponse{}, fmt.Errorf("%w: unknown device", adapter.ErrDeviceNotApproved)
}

func (f *fakeRegistry) Logout(context.Context) error {
	f.SetToken("")
	return nil
}

func (f *fakeRegistry) Me(context.Context) (models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.token == "" {
		return models.Account{}, fmt.Errorf("%w: no session", adapter.ErrUnauthorized)
	}
	for _, account := range f.accounts {
		if f.token == "token-"+account.userID {
			return account.profile, nil
		}
	}
	return models.Account{}, fmt.Errorf("%w: unknown user", adapter.ErrNotFound)
}

// setEmail mutates the registry-side profile, simulating an account change
// made from elsewhere.
func (f *fakeRegistry) setEmail(username, email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	account := f.accounts[username]
	account.profile.Email = email
	f.accounts[username] = account
}

func (f *fakeRegistry) CreateEntry(_ context.Context, entry models.VaultEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[entry.EntryID] = entry
	return nil
}

func (f *fakeRegistry) ListEntries(context.Context) ([]models.VaultEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.VaultEntry, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeRegistry) UpdateEntry(_ context.Context, entry models.VaultEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entries[entry.EntryID]; !ok {
		return fmt.Errorf("%w: entry %s", adapter.ErrNotFound, entry.EntryID)
	}
	f.entries[entry.EntryID] = entry
	return nil
}

func (f *fakeRegistry) DeleteEntry(_ context.Context, entryID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entries[entryID]; !ok {
		return fmt.Errorf("%w: entry %s", adapter.ErrNotFound, entryID)
	}
	delete(f.entries, entryID)
	return nil
}

func (f *fakeRegistry) RequestDeviceApproval(_ context.Context, req models.DeviceApprovalRequest) (models.DeviceIdentity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	account, ok := f.accounts[req.Username]
	if !ok {
		return models.DeviceIdentity{}, fmt.Errorf("%w: unknown account", adapter.ErrNotFound)
	}

	f.nextID++
	deviceID := fmt.Sprintf("dev-%d", f.nextID)
	device := models.DeviceIdentity{
		DeviceID:        deviceID,
		UserID:          account.userID,
		Name:            req.DeviceName,
		Fingerprint:     req.Fingerprint,
		PublicDeviceKey: req.PublicDeviceKey,
		Status:          models.DevicePending,
	}
	f.devices[deviceID] = device
	return device, nil
}

func (f *fakeRegistry) PendingDevices(context.Context) ([]models.DeviceIdentity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.DeviceIdentity
	for _, d := range f.devices {
		if d.Status == models.DevicePending {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeRegistry) ApproveDevice(_ context.Context, grant models.DeviceApprovalGrant) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	device, ok := f.devices[grant.DeviceID]
	if !ok || device.Status != models.DevicePending {
		return fmt.Errorf("%w: device not pending", adapter.ErrConflict)
	}
	device.Status = models.DeviceApproved
	f.devices[grant.DeviceID] = device
	f.grants[grant.DeviceID] = models.ProvisionDelivery{
		DeviceID:   grant.DeviceID,
		WrappedKey: grant.WrappedKey,
		ApprovedAt: time.Now(),
	}
	return nil
}

func (f *fakeRegistry) FetchProvision(_ context.Context, req models.ProvisionFetchRequest) (models.ProvisionDelivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delivery, ok := f.grants[req.DeviceID]
	if !ok {
		return models.ProvisionDelivery{}, fmt.Errorf("%w: no grant yet", adapter.ErrNotFound)
	}
	return delivery, nil
}
