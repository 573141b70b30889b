package client

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pswdapp/vaultcore/internal/config"
	"github.com/pswdapp/vaultcore/internal/logger"
	"github.com/pswdapp/vaultcore/internal/service"
	"github.com/pswdapp/vaultcore/models"
)

type stubSession struct {
	unlocked    bool
	unlockedPw  []string
	lockCount   int
	unlockedAt  time.Time
	lastActive  time.Time
	unlockError error
}

func (s *stubSession) Unlock(_ context.Context, password string) error {
	if s.unlockError != nil {
		return s.unlockError
	}
	s.unlockedPw = append(s.unlockedPw, password)
	s.unlocked = true
	return nil
}

func (s *stubSession) Lock() {
	s.lockCount++
	s.unlocked = false
}

func (s *stubSession) Close() { s.Lock() }

func (s *stubSession) State() service.SessionState {
	if s.unlocked {
		return service.StateUnlocked
	}
	return service.StateLocked
}

func (s *stubSession) Unlocked() bool          { return s.unlocked }
func (s *stubSession) UnlockedAt() time.Time   { return s.unlockedAt }
func (s *stubSession) LastActivity() time.Time { return s.lastActive }

func (s *stubSession) EntryKey() ([]byte, error) {
	if !s.unlocked {
		return nil, service.ErrLocked
	}
	return make([]byte, 32), nil
}

func (s *stubSession) Secrets() (service.SessionSecrets, error) {
	if !s.unlocked {
		return service.SessionSecrets{}, service.ErrLocked
	}
	return service.SessionSecrets{}, nil
}

func (s *stubSession) AuthVerifier() (string, error) {
	if !s.unlocked {
		return "", service.ErrLocked
	}
	return "verifier", nil
}

type stubAuth struct {
	logins  int
	logouts int
}

func (a *stubAuth) Login(context.Context) error  { a.logins++; return nil }
func (a *stubAuth) Logout(context.Context) error { a.logouts++; return nil }

type stubRegistration struct {
	username string
	email    string
	password string
}

func (r *stubRegistration) Register(_ context.Context, username, email, password string) (models.Account, error) {
	r.username, r.email, r.password = username, email, password
	return models.Account{UserID: "u-1", Username: username, Email: email}, nil
}

type createdEntry struct {
	title     string
	entryType string
	payload   models.EntryPayload
}

type stubEntries struct {
	entries []models.VaultEntry
	payload models.EntryPayload
	created []createdEntry
	deleted []string
	refresh int
}

func (e *stubEntries) Create(_ context.Context, title, entryType string, payload models.EntryPayload) (models.VaultEntry, error) {
	e.created = append(e.created, createdEntry{title: title, entryType: entryType, payload: payload})
	return models.VaultEntry{EntryID: "e-1", Title: title, EntryType: entryType}, nil
}

func (e *stubEntries) Get(_ context.Context, entryID string) (models.VaultEntry, models.EntryPayload, error) {
	for _, entry := range e.entries {
		if entry.EntryID == entryID {
			return entry, e.payload, nil
		}
	}
	return models.VaultEntry{}, models.EntryPayload{}, service.ErrKeyMaterialAbsent
}

func (e *stubEntries) GetByTitle(_ context.Context, title string) (models.VaultEntry, models.EntryPayload, error) {
	for _, entry := range e.entries {
		if entry.Title == title {
			return entry, e.payload, nil
		}
	}
	return models.VaultEntry{}, models.EntryPayload{}, service.ErrKeyMaterialAbsent
}

func (e *stubEntries) List(context.Context) ([]models.VaultEntry, error) { return e.entries, nil }

func (e *stubEntries) Update(context.Context, string, string, string, models.EntryPayload) error {
	return nil
}

func (e *stubEntries) Delete(_ context.Context, entryID string) error {
	e.deleted = append(e.deleted, entryID)
	return nil
}

func (e *stubEntries) Refresh(context.Context) error { e.refresh++; return nil }

type stubDeviceTrust struct {
	pending  []models.DeviceIdentity
	approved []string
}

func (d *stubDeviceTrust) RequestApproval(context.Context, string, string) (models.DeviceIdentity, error) {
	return models.DeviceIdentity{DeviceID: "d-2", Fingerprint: "fp"}, nil
}

func (d *stubDeviceTrust) Pending(context.Context) ([]models.DeviceIdentity, error) {
	return d.pending, nil
}

func (d *stubDeviceTrust) Approve(_ context.Context, deviceID string) error {
	d.approved = append(d.approved, deviceID)
	return nil
}

func (d *stubDeviceTrust) WaitForApproval(context.Context) (models.ProvisionDelivery, error) {
	return models.ProvisionDelivery{DeviceID: "d-2"}, nil
}

func (d *stubDeviceTrust) CompleteApproval(context.Context, models.ProvisionDelivery, string) error {
	return nil
}

type stubAutoLock struct {
	started int
	stopped int
}

func (j *stubAutoLock) Start(context.Context, time.Duration) { j.started++ }
func (j *stubAutoLock) Stop()                                { j.stopped++ }

var _ service.AutoLockJob = (*stubAutoLock)(nil)

type testHarness struct {
	app      *App
	session  *stubSession
	auth     *stubAuth
	reg      *stubRegistration
	entries  *stubEntries
	trust    *stubDeviceTrust
	autoLock *stubAutoLock
	out      *bytes.Buffer
}

func newTestApp(t *testing.T, stdin string) *testHarness {
	t.Helper()

	h := &testHarness{
		session:  &stubSession{},
		auth:     &stubAuth{},
		reg:      &stubRegistration{},
		entries:  &stubEntries{},
		trust:    &stubDeviceTrust{},
		autoLock: &stubAutoLock{},
		out:      &bytes.Buffer{},
	}

	services := &service.Services{
		Session:      h.session,
		Registration: h.reg,
		Auth:         h.auth,
		DeviceTrust:  h.trust,
		Entries:      h.entries,
		AutoLock:     h.autoLock,
	}

	app, err := NewApp(services, config.Workers{AutoLockAfter: time.Minute}, logger.Nop())
	require.NoError(t, err)

	in := strings.NewReader(stdin)
	app.in = in
	app.reader = bufio.NewReader(in)
	app.out = h.out
	h.app = app
	return h
}

func TestApp_Run_UnknownCommand(t *testing.T) {
	h := newTestApp(t, "")
	err := h.app.Run([]string{"frobnicate"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestApp_Run_NoArgsPrintsUsage(t *testing.T) {
	h := newTestApp(t, "")
	err := h.app.Run(nil)
	require.Error(t, err)
	assert.Contains(t, h.out.String(), "Usage:")
}

func TestApp_Run_LocksSessionAndStopsWorkers(t *testing.T) {
	h := newTestApp(t, "")
	require.NoError(t, h.app.Run([]string{"list"}))

	assert.Equal(t, 1, h.session.lockCount)
	assert.Equal(t, 1, h.autoLock.started)
	assert.Equal(t, 1, h.autoLock.stopped)
}

func TestApp_Register(t *testing.T) {
	h := newTestApp(t, "correct horse\ncorrect horse\n")

	require.NoError(t, h.app.Run([]string{"register", "-u", "alice", "-e", "alice@example.com"}))

	assert.Equal(t, "alice", h.reg.username)
	assert.Equal(t, "alice@example.com", h.reg.email)
	assert.Equal(t, "correct horse", h.reg.password)
	assert.Equal(t, 1, h.auth.logins)
	assert.Contains(t, h.out.String(), "master device")
}

func TestApp_Register_PasswordMismatch(t *testing.T) {
	h := newTestApp(t, "one\nother\n")

	err := h.app.Run([]string{"register", "-u", "alice"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "do not match")
	assert.Empty(t, h.reg.username)
}

func TestApp_Register_RequiresUsername(t *testing.T) {
	h := newTestApp(t, "")
	err := h.app.Run([]string{"register"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-u")
}

func TestApp_Add_PasswordEntry(t *testing.T) {
	// Payload prompts come first, then the vault password for connect.
	stdin := "bob\nhunter2\nhttps://example.com\n\nmaster-pw\n"
	h := newTestApp(t, stdin)

	require.NoError(t, h.app.Run([]string{"add", "-t", "Example", "-type", "password"}))

	require.Len(t, h.entries.created, 1)
	created := h.entries.created[0]
	assert.Equal(t, "Example", created.title)
	assert.Equal(t, models.EntryTypePassword, created.entryType)
	require.NotNil(t, created.payload.Login)
	assert.Equal(t, "bob", created.payload.Login.Username)
	assert.Equal(t, "hunter2", created.payload.Login.Password)
	assert.Equal(t, "https://example.com", created.payload.Login.URL)

	assert.Equal(t, []string{"master-pw"}, h.session.unlockedPw)
	assert.Equal(t, 1, h.auth.logins)
}

func TestApp_Get_ByTitle(t *testing.T) {
	h := newTestApp(t, "master-pw\n")
	h.entries.entries = []models.VaultEntry{{EntryID: "e-1", Title: "Example", EntryType: models.EntryTypePassword}}
	h.entries.payload = models.EntryPayload{Login: &models.LoginPayload{Username: "bob", Password: "hunter2"}}

	require.NoError(t, h.app.Run([]string{"get", "-t", "Example"}))

	out := h.out.String()
	assert.Contains(t, out, "Username: bob")
	assert.Contains(t, out, "Password: hunter2")
	// Reading the local cache needs no registry session.
	assert.Zero(t, h.auth.logins)
}

func TestApp_Get_SkipsPromptWhenUnlocked(t *testing.T) {
	h := newTestApp(t, "")
	h.session.unlocked = true
	h.entries.entries = []models.VaultEntry{{EntryID: "e-1", Title: "Example"}}
	h.entries.payload = models.EntryPayload{Note: &models.NotePayload{Text: "secret"}}

	require.NoError(t, h.app.Run([]string{"get", "-id", "e-1"}))
	assert.Empty(t, h.session.unlockedPw)
	assert.Contains(t, h.out.String(), "secret")
}

func TestApp_List_NoUnlockNeeded(t *testing.T) {
	h := newTestApp(t, "")
	h.entries.entries = []models.VaultEntry{
		{EntryID: "e-1", Title: "Bank", EntryType: models.EntryTypePassword},
		{EntryID: "e-2", Title: "Shopping", EntryType: models.EntryTypeNote},
	}

	require.NoError(t, h.app.Run([]string{"list"}))

	out := h.out.String()
	assert.Contains(t, out, "Bank")
	assert.Contains(t, out, "Shopping")
	assert.Empty(t, h.session.unlockedPw)
}

func TestApp_Remove_ByTitle(t *testing.T) {
	h := newTestApp(t, "master-pw\n")
	h.entries.entries = []models.VaultEntry{{EntryID: "e-9", Title: "Old"}}

	require.NoError(t, h.app.Run([]string{"rm", "-t", "Old"}))
	assert.Equal(t, []string{"e-9"}, h.entries.deleted)
}

func TestApp_Sync(t *testing.T) {
	h := newTestApp(t, "master-pw\n")

	require.NoError(t, h.app.Run([]string{"sync"}))
	assert.Equal(t, 1, h.entries.refresh)
	assert.Equal(t, 1, h.auth.logins)
}

func TestApp_Devices_ListsPending(t *testing.T) {
	h := newTestApp(t, "master-pw\n")
	h.trust.pending = []models.DeviceIdentity{{DeviceID: "d-7", Name: "laptop", Fingerprint: "fp-7"}}

	require.NoError(t, h.app.Run([]string{"devices"}))
	assert.Contains(t, h.out.String(), "d-7")
	assert.Contains(t, h.out.String(), "laptop")
}

func TestApp_Approve_RequiresDeviceID(t *testing.T) {
	h := newTestApp(t, "")
	err := h.app.Run([]string{"approve"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-d")
}

func TestApp_Approve(t *testing.T) {
	h := newTestApp(t, "master-pw\n")

	require.NoError(t, h.app.Run([]string{"approve", "-d", "d-7"}))
	assert.Equal(t, []string{"d-7"}, h.trust.approved)
}

func TestApp_Enroll(t *testing.T) {
	h := newTestApp(t, "local-pass\nlocal-pass\n")

	require.NoError(t, h.app.Run([]string{"enroll", "-u", "alice"}))

	assert.Equal(t, 1, h.auth.logins)
	assert.Equal(t, 1, h.entries.refresh)
	assert.Contains(t, h.out.String(), "Device approved")
}
