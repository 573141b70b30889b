package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"testing"

	"github.com/pswdapp/vaultcore/internal/crypto"
	"github.com/pswdapp/vaultcore/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistration_Register(t *testing.T) {
	e := newEnv(t, nil, "master-laptop")

	account, err := e.services.Registration.Register(context.Background(), testUsername, "ann@example.com", testPassword)

	require.NoError(t, err)
	assert.Equal(t, testUsername, account.Username)
	assert.NotEmpty(t, account.UserID)
	assert.NotEmpty(t, account.PublicEncryptionKey)
	assert.NotEmpty(t, account.PublicSigningKey)
	assert.True(t, account.MasterDeviceRegistered)

	// Registration leaves the session unlocked.
	assert.True(t, e.services.Session.Unlocked())

	// The self device row is the approved master.
	self, err := e.storages.Devices.Self(context.Background())
	require.NoError(t, err)
	assert.True(t, self.IsMaster)
	assert.True(t, self.IsSelf)
	assert.Equal(t, models.DeviceApproved, self.Status)
	assert.NotEmpty(t, self.Fingerprint)
}

func TestRegistration_NeverPersistsPlaintextPrivateKeys(t *testing.T) {
	e := newEnv(t, nil, "master-laptop")
	register(t, e)

	secrets, err := e.services.Session.Secrets()
	require.NoError(t, err)
	defer secrets.Zero()

	ctx := context.Background()
	for kind, plain := range map[models.KeyKind][]byte{
		models.KeyKindEncryption: secrets.EncryptionPrivate,
		models.KeyKindSigning:    secrets.SigningPrivate,
		models.KeyKindDevice:     secrets.DevicePrivate,
	} {
		stored, gerr := e.storages.Keys.Get(ctx, kind)
		require.NoError(t, gerr)
		assert.NotEqual(t, plain, stored, "%s stored unwrapped", kind)
		assert.False(t, bytes.Contains(stored, plain), "%s plaintext embedded in stored blob", kind)
		// Wrapped form carries nonce and tag on top of the key bytes.
		assert.Greater(t, len(stored), len(plain))
	}
}

func TestRegistration_PersistsIdentityPublicKeys(t *testing.T) {
	e := newEnv(t, nil, "master-laptop")

	account, err := e.services.Registration.Register(context.Background(), testUsername, "ann@example.com", testPassword)
	require.NoError(t, err)

	// The public halves live unwrapped in their own slots and match the
	// account record exactly.
	ctx := context.Background()
	encPub, err := e.storages.Keys.Get(ctx, models.KeyKindEncryptionPublic)
	require.NoError(t, err)
	assert.Equal(t, account.PublicEncryptionKey, base64.StdEncoding.EncodeToString(encPub))

	signPub, err := e.storages.Keys.Get(ctx, models.KeyKindSigningPublic)
	require.NoError(t, err)
	assert.Equal(t, account.PublicSigningKey, base64.StdEncoding.EncodeToString(signPub))
}

func TestRegistration_UsernameTaken(t *testing.T) {
	reg := newFakeRegistry()
	first := newEnv(t, reg, "master-laptop")
	register(t, first)

	second := newEnv(t, reg, "other-laptop")
	_, err := second.services.Registration.Register(context.Background(), testUsername, "", "OtherPassword2")

	require.ErrorIs(t, err, ErrUsernameTaken)
	assert.False(t, second.services.Session.Unlocked())
}

func TestRegistration_RequiresUsernameAndPassword(t *testing.T) {
	e := newEnv(t, nil, "master-laptop")

	_, err := e.services.Registration.Register(context.Background(), "", "", testPassword)
	require.Error(t, err)

	_, err = e.services.Registration.Register(context.Background(), testUsername, "", "")
	require.Error(t, err)
}

func TestRegistration_FingerprintStableAcrossCalls(t *testing.T) {
	e := newEnv(t, nil, "master-laptop")
	register(t, e)

	self, err := e.storages.Devices.Self(context.Background())
	require.NoError(t, err)

	// The install id was persisted during registration; recomputing the
	// attributes must reproduce the identical fingerprint.
	attrs, err := deviceAttributes(context.Background(), e.storages.Keys, e.services.Registration.(*registrationService).ids)
	require.NoError(t, err)

	assert.Equal(t, self.Fingerprint, crypto.Fingerprint(attrs))
}
