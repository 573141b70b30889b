package service

import (
	"context"
	"testing"
	"time"

	"github.com/pswdapp/vaultcore/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const localPassphrase = "phone-pin-Long-Enough-7"

// setupSecondary runs the request side of the approval flow on a fresh
// device sharing the master's registry.
func setupSecondary(t *testing.T, reg *fakeRegistry) (*env, models.DeviceIdentity) {
	t.Helper()
	secondary := newEnv(t, reg, "phone")
	identity, err := secondary.services.DeviceTrust.RequestApproval(context.Background(), testUsername, localPassphrase)
	require.NoError(t, err)
	return secondary, identity
}

func TestDeviceTrust_FullApprovalFlow(t *testing.T) {
	ctx := context.Background()
	reg := newFakeRegistry()

	// Master registers and creates an entry.
	master := newEnv(t, reg, "master-laptop")
	register(t, master)
	created, err := master.services.Entries.Create(ctx, "Bank", models.EntryTypePassword, loginPayload("p@ss"))
	require.NoError(t, err)

	// Secondary announces itself and is pending.
	secondary, identity := setupSecondary(t, reg)
	assert.Equal(t, models.DevicePending, identity.Status)

	// A pending device cannot touch the vault.
	_, err = secondary.services.Entries.List(ctx)
	require.ErrorIs(t, err, ErrDeviceNotApproved)

	// Master sees and approves it.
	pending, err := master.services.DeviceTrust.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.NoError(t, master.services.DeviceTrust.Approve(ctx, identity.DeviceID))

	// Secondary picks up the grant and completes provisioning without
	// ever seeing the master password.
	waitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	delivery, err := secondary.services.DeviceTrust.WaitForApproval(waitCtx)
	require.NoError(t, err)
	require.NoError(t, secondary.services.DeviceTrust.CompleteApproval(ctx, delivery, localPassphrase))
	assert.True(t, secondary.services.Session.Unlocked())

	// The secondary can now pull and decrypt the master's entry.
	require.NoError(t, secondary.services.Entries.Refresh(ctx))
	_, payload, err := secondary.services.Entries.Get(ctx, created.EntryID)
	require.NoError(t, err)
	require.NotNil(t, payload.Login)
	assert.Equal(t, "p@ss", payload.Login.Password)
}

func TestDeviceTrust_SecondaryUnlocksWithLocalPassphraseAfterRestart(t *testing.T) {
	ctx := context.Background()
	reg := newFakeRegistry()

	master := newEnv(t, reg, "master-laptop")
	register(t, master)
	created, err := master.services.Entries.Create(ctx, "Bank", models.EntryTypePassword, loginPayload("p@ss"))
	require.NoError(t, err)

	secondary, identity := setupSecondary(t, reg)
	require.NoError(t, master.services.DeviceTrust.Approve(ctx, identity.DeviceID))
	delivery, err := secondary.services.DeviceTrust.WaitForApproval(ctx)
	require.NoError(t, err)
	require.NoError(t, secondary.services.DeviceTrust.CompleteApproval(ctx, delivery, localPassphrase))
	require.NoError(t, secondary.services.Entries.Refresh(ctx))

	// Simulate a restart: lock, then unlock with the local passphrase.
	secondary.services.Session.Lock()
	require.NoError(t, secondary.services.Session.Unlock(ctx, localPassphrase))

	_, payload, err := secondary.services.Entries.Get(ctx, created.EntryID)
	require.NoError(t, err)
	assert.Equal(t, "p@ss", payload.Login.Password)

	// Wrong local passphrase behaves exactly like a wrong master password.
	secondary.services.Session.Lock()
	err = secondary.services.Session.Unlock(ctx, "wrong-pin")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDeviceTrust_ApproveRequiresUnlockedMaster(t *testing.T) {
	ctx := context.Background()
	reg := newFakeRegistry()

	master := newEnv(t, reg, "master-laptop")
	register(t, master)
	_, identity := setupSecondary(t, reg)

	master.services.Session.Lock()
	err := master.services.DeviceTrust.Approve(ctx, identity.DeviceID)

	require.ErrorIs(t, err, ErrLocked)
}

func TestDeviceTrust_ApproveNonPendingDevice(t *testing.T) {
	ctx := context.Background()
	reg := newFakeRegistry()

	master := newEnv(t, reg, "master-laptop")
	register(t, master)

	err := master.services.DeviceTrust.Approve(ctx, "dev-does-not-exist")

	require.ErrorIs(t, err, ErrDeviceNotPending)
}

func TestDeviceTrust_ApproveRefusedOnSecondary(t *testing.T) {
	ctx := context.Background()
	reg := newFakeRegistry()

	master := newEnv(t, reg, "master-laptop")
	register(t, master)

	secondary, identity := setupSecondary(t, reg)
	require.NoError(t, master.services.DeviceTrust.Approve(ctx, identity.DeviceID))
	delivery, err := secondary.services.DeviceTrust.WaitForApproval(ctx)
	require.NoError(t, err)
	require.NoError(t, secondary.services.DeviceTrust.CompleteApproval(ctx, delivery, localPassphrase))

	// Even unlocked, a non-master device cannot approve anyone.
	_, thirdIdentity := setupSecondary(t, reg)
	err = secondary.services.DeviceTrust.Approve(ctx, thirdIdentity.DeviceID)

	require.ErrorIs(t, err, ErrNotMasterDevice)
}

func TestDeviceTrust_CompleteApprovalWrongPassphrase(t *testing.T) {
	ctx := context.Background()
	reg := newFakeRegistry()

	master := newEnv(t, reg, "master-laptop")
	register(t, master)

	secondary, identity := setupSecondary(t, reg)
	require.NoError(t, master.services.DeviceTrust.Approve(ctx, identity.DeviceID))
	delivery, err := secondary.services.DeviceTrust.WaitForApproval(ctx)
	require.NoError(t, err)

	err = secondary.services.DeviceTrust.CompleteApproval(ctx, delivery, "not-the-pin")

	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.False(t, secondary.services.Session.Unlocked())
}

func TestDeviceTrust_WaitForApprovalHonorsContext(t *testing.T) {
	reg := newFakeRegistry()

	master := newEnv(t, reg, "master-laptop")
	register(t, master)
	secondary, _ := setupSecondary(t, reg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := secondary.services.DeviceTrust.WaitForApproval(ctx)

	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDeviceTrust_SingleMasterInvariant(t *testing.T) {
	ctx := context.Background()
	reg := newFakeRegistry()

	master := newEnv(t, reg, "master-laptop")
	register(t, master)

	secondary, identity := setupSecondary(t, reg)
	require.NoError(t, master.services.DeviceTrust.Approve(ctx, identity.DeviceID))
	delivery, err := secondary.services.DeviceTrust.WaitForApproval(ctx)
	require.NoError(t, err)
	require.NoError(t, secondary.services.DeviceTrust.CompleteApproval(ctx, delivery, localPassphrase))

	// Each device store sees exactly one master across all known rows.
	for _, e := range []*env{master, secondary} {
		devices, derr := e.storages.Devices.ListDevices(ctx)
		require.NoError(t, derr)
		masters := 0
		for _, d := range devices {
			if d.IsMaster {
				masters++
			}
		}
		assert.LessOrEqual(t, masters, 1)
	}
}
