package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pswdapp/vaultcore/internal/adapter"
	"github.com/pswdapp/vaultcore/internal/crypto"
	"github.com/pswdapp/vaultcore/internal/logger"
	"github.com/pswdapp/vaultcore/internal/store"
	"github.com/pswdapp/vaultcore/internal/utils"
	"github.com/pswdapp/vaultcore/models"
	"github.com/vmihailenco/msgpack/v4"
)

const defaultApprovalPoll = 5 * time.Second

type deviceTrustService struct {
	keychain   crypto.KeyChain
	params     crypto.Params
	stores     *store.Storages
	registry   adapter.RegistryClient
	session    *session
	ids        *utils.UUIDGenerator
	deviceName string
	poll       time.Duration
	logger     *logger.Logger
}

func newDeviceTrustService(
	keychain crypto.KeyChain,
	params crypto.Params,
	stores *store.Storages,
	registry adapter.RegistryClient,
	sess *session,
	ids *utils.UUIDGenerator,
	deviceName string,
	poll time.Duration,
	log *logger.Logger,
) *deviceTrustService {
	if poll <= 0 {
		poll = defaultApprovalPoll
	}
	return &deviceTrustService{
		keychain:   keychain,
		params:     params,
		stores:     stores,
		registry:   registry,
		session:    sess,
		ids:        ids,
		deviceName: deviceName,
		poll:       poll,
		logger:     log,
	}
}

// RequestApproval implements [DeviceTrustService]. The secondary device has
// no master password, so its device private key is protected at rest under
// a key derived from a passphrase local to this device. Only public
// material goes to the registry.
func (d *deviceTrustService) RequestApproval(ctx context.Context, username, localPassphrase string) (models.DeviceIdentity, error) {
	if username == "" || localPassphrase == "" {
		return models.DeviceIdentity{}, fmt.Errorf("request approval: username and local passphrase are required")
	}

	device, err := d.keychain.GenerateDeviceKeys()
	if err != nil {
		return models.DeviceIdentity{}, fmt.Errorf("request approval: %w", err)
	}
	defer crypto.Zero(device.Private)

	localSalt, err := d.keychain.GenerateSalt()
	if err != nil {
		return models.DeviceIdentity{}, fmt.Errorf("request approval: %w", err)
	}

	localKey, err := d.keychain.DeriveMasterKey(ctx, []byte(localPassphrase), localSalt)
	if err != nil {
		return models.DeviceIdentity{}, fmt.Errorf("request approval: %w", err)
	}
	defer crypto.Zero(localKey)

	deviceBlob, err := d.keychain.Wrap(device.Private, localKey)
	if err != nil {
		return models.DeviceIdentity{}, fmt.Errorf("request approval: %w", err)
	}

	paramsJSON, err := json.Marshal(d.params)
	if err != nil {
		return models.DeviceIdentity{}, fmt.Errorf("request approval: encode kdf params: %w", err)
	}
	accountJSON, err := json.Marshal(models.Account{Username: username})
	if err != nil {
		return models.DeviceIdentity{}, fmt.Errorf("request approval: encode account: %w", err)
	}

	for kind, value := range map[models.KeyKind][]byte{
		models.KeyKindDevicePublic:  device.Public,
		models.KeyKindLocalWrapSalt: localSalt,
		models.KeyKindKDFParams:     paramsJSON,
		models.KeyKindAccount:       accountJSON,
	} {
		if err = d.stores.Keys.Put(ctx, kind, value); err != nil {
			return models.DeviceIdentity{}, fmt.Errorf("request approval: store %s: %w", kind, err)
		}
	}
	if err = putWrapped(ctx, d.stores.Keys, []models.EncryptedKeyBlob{{Kind: models.KeyKindDevice, Blob: deviceBlob}}); err != nil {
		return models.DeviceIdentity{}, fmt.Errorf("request approval: %w", err)
	}

	attrs, err := deviceAttributes(ctx, d.stores.Keys, d.ids)
	if err != nil {
		return models.DeviceIdentity{}, fmt.Errorf("request approval: %w", err)
	}
	fingerprint := crypto.Fingerprint(attrs)

	identity, err := d.registry.RequestDeviceApproval(ctx, models.DeviceApprovalRequest{
		Username:        username,
		DeviceName:      d.deviceName,
		Fingerprint:     fingerprint,
		PublicDeviceKey: base64.StdEncoding.EncodeToString(device.Public),
	})
	if err != nil {
		return models.DeviceIdentity{}, fmt.Errorf("request approval: %w", mapAdapterError(err))
	}

	identity.IsSelf = true
	identity.Status = models.DevicePending
	identity.Fingerprint = fingerprint
	if err = d.stores.Devices.SaveDevice(ctx, identity); err != nil {
		return models.DeviceIdentity{}, fmt.Errorf("request approval: store device: %w", err)
	}

	d.logger.Info().
		Str("func", "devicetrust.RequestApproval").
		Str("device_id", identity.DeviceID).
		Str("fingerprint", fingerprint[:8]).
		Msg("device registered, awaiting approval")

	return identity, nil
}

// Pending implements [DeviceTrustService].
func (d *deviceTrustService) Pending(ctx context.Context) ([]models.DeviceIdentity, error) {
	devices, err := d.registry.PendingDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("pending devices: %w", mapAdapterError(err))
	}
	return devices, nil
}

// Approve implements [DeviceTrustService]. The identity private keys are
// wrapped under the pending device's public key, not under anything derived
// from the master password: the secondary must be able to open the bundle
// with nothing but its own device private key.
func (d *deviceTrustService) Approve(ctx context.Context, deviceID string) error {
	self, err := d.stores.Devices.Self(ctx)
	if err != nil {
		if errors.Is(err, store.ErrDeviceNotFound) {
			return ErrKeyMaterialAbsent
		}
		return fmt.Errorf("approve device: %w", err)
	}
	if !self.IsMaster {
		return ErrNotMasterDevice
	}

	secrets, err := d.session.Secrets()
	if err != nil {
		return err
	}
	defer secrets.Zero()

	pending, err := d.Pending(ctx)
	if err != nil {
		return err
	}
	var target models.DeviceIdentity
	for _, dev := range pending {
		if dev.DeviceID == deviceID {
			target = dev
			break
		}
	}
	if target.DeviceID == "" {
		return fmt.Errorf("approve device %s: %w", deviceID, ErrDeviceNotPending)
	}

	devicePublic, err := base64.StdEncoding.DecodeString(target.PublicDeviceKey)
	if err != nil {
		return fmt.Errorf("approve device: decode device public key: %w", err)
	}

	salt, err := d.stores.Keys.Get(ctx, models.KeyKindPasswordSalt)
	if err != nil {
		return fmt.Errorf("approve device: %w", err)
	}

	// The verifier rides along so the secondary can log in to the
	// registry; it cannot unwrap anything client-side.
	verifier, _ := d.session.AuthVerifier()

	bundle := models.ProvisionBundle{
		EncryptionPrivateKey: secrets.EncryptionPrivate,
		SigningPrivateKey:    secrets.SigningPrivate,
		PasswordSalt:         salt,
		AuthVerifier:         verifier,
	}
	packed, err := msgpack.Marshal(&bundle)
	if err != nil {
		return fmt.Errorf("approve device: encode bundle: %w", err)
	}
	defer crypto.Zero(packed)

	wrapped, err := d.keychain.WrapForDevice(devicePublic, packed)
	if err != nil {
		return fmt.Errorf("approve device: %w", err)
	}

	if err = d.registry.ApproveDevice(ctx, models.DeviceApprovalGrant{DeviceID: deviceID, WrappedKey: wrapped}); err != nil {
		return fmt.Errorf("approve device: %w", mapAdapterError(err))
	}

	target.Status = models.DeviceApproved
	if err = d.stores.Devices.SaveDevice(ctx, target); err != nil {
		d.logger.Warn().Str("func", "devicetrust.Approve").Err(err).Msg("cache approved device row")
	}

	d.logger.Info().
		Str("func", "devicetrust.Approve").
		Str("device_id", deviceID).
		Msg("device approved, provisioning bundle uploaded")

	return nil
}

// WaitForApproval implements [DeviceTrustService]. It polls the registry at
// the configured interval; the registry answers not-found until the master
// uploads the grant.
func (d *deviceTrustService) WaitForApproval(ctx context.Context) (models.ProvisionDelivery, error) {
	self, err := d.stores.Devices.Self(ctx)
	if err != nil {
		if errors.Is(err, store.ErrDeviceNotFound) {
			return models.ProvisionDelivery{}, ErrKeyMaterialAbsent
		}
		return models.ProvisionDelivery{}, fmt.Errorf("wait for approval: %w", err)
	}

	req := models.ProvisionFetchRequest{DeviceID: self.DeviceID, Fingerprint: self.Fingerprint}

	ticker := time.NewTicker(d.poll)
	defer ticker.Stop()

	for {
		delivery, err := d.registry.FetchProvision(ctx, req)
		if err == nil {
			return delivery, nil
		}
		if !errors.Is(err, adapter.ErrNotFound) {
			return models.ProvisionDelivery{}, fmt.Errorf("wait for approval: %w", mapAdapterError(err))
		}

		select {
		case <-ctx.Done():
			return models.ProvisionDelivery{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

// CompleteApproval implements [DeviceTrustService]. Everything delivered in
// the bundle is re-wrapped under the local passphrase key before it touches
// the store; the session comes up Unlocked without the master password ever
// having been on this device.
func (d *deviceTrustService) CompleteApproval(ctx context.Context, delivery models.ProvisionDelivery, localPassphrase string) error {
	kc, localSalt, localMode, err := storedKeyChain(ctx, d.stores.Keys, d.keychain)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return ErrKeyMaterialAbsent
		}
		return fmt.Errorf("complete approval: %w", err)
	}
	if !localMode {
		// A master device never completes an approval; it grants them.
		return fmt.Errorf("complete approval: device holds master key material")
	}

	localKey, err := kc.DeriveMasterKey(ctx, []byte(localPassphrase), localSalt)
	if err != nil {
		return fmt.Errorf("complete approval: %w", err)
	}
	defer crypto.Zero(localKey)

	deviceBlob, err := d.stores.Keys.Get(ctx, models.KeyKindDevice)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return ErrKeyMaterialAbsent
		}
		return fmt.Errorf("complete approval: %w", err)
	}

	devicePrivate, err := kc.Unwrap(deviceBlob, localKey)
	if err != nil {
		if errors.Is(err, crypto.ErrDecrypt) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("complete approval: %w", err)
	}
	defer crypto.Zero(devicePrivate)

	packed, err := kc.OpenFromDevice(devicePrivate, delivery.WrappedKey)
	if err != nil {
		return fmt.Errorf("complete approval: open bundle: %w", err)
	}
	defer crypto.Zero(packed)

	var bundle models.ProvisionBundle
	if err = msgpack.Unmarshal(packed, &bundle); err != nil {
		return fmt.Errorf("complete approval: decode bundle: %w", err)
	}
	defer crypto.Zero(bundle.EncryptionPrivateKey, bundle.SigningPrivateKey)

	wrapped := make([]models.EncryptedKeyBlob, 0, 3)
	for kind, plain := range map[models.KeyKind][]byte{
		models.KeyKindEncryption: bundle.EncryptionPrivateKey,
		models.KeyKindSigning:    bundle.SigningPrivateKey,
	} {
		blob, werr := kc.Wrap(plain, localKey)
		if werr != nil {
			return fmt.Errorf("complete approval: wrap %s: %w", kind, werr)
		}
		wrapped = append(wrapped, models.EncryptedKeyBlob{Kind: kind, Blob: blob})
	}
	if bundle.AuthVerifier != "" {
		blob, werr := kc.Wrap([]byte(bundle.AuthVerifier), localKey)
		if werr != nil {
			return fmt.Errorf("complete approval: wrap verifier: %w", werr)
		}
		wrapped = append(wrapped, models.EncryptedKeyBlob{Kind: models.KeyKindAuthVerifier, Blob: blob})
	}
	if err = d.stores.Keys.Put(ctx, models.KeyKindPasswordSalt, bundle.PasswordSalt); err != nil {
		return fmt.Errorf("complete approval: store %s: %w", models.KeyKindPasswordSalt, err)
	}
	if err = putWrapped(ctx, d.stores.Keys, wrapped); err != nil {
		return fmt.Errorf("complete approval: %w", err)
	}

	self, err := d.stores.Devices.Self(ctx)
	if err != nil {
		return fmt.Errorf("complete approval: %w", err)
	}
	if err = d.stores.Devices.SetStatus(ctx, self.DeviceID, models.DeviceApproved); err != nil {
		return fmt.Errorf("complete approval: %w", err)
	}

	d.session.adopt(
		append([]byte(nil), bundle.EncryptionPrivateKey...),
		append([]byte(nil), bundle.SigningPrivateKey...),
		append([]byte(nil), devicePrivate...),
		[]byte(bundle.AuthVerifier),
	)

	d.logger.Info().
		Str("func", "devicetrust.CompleteApproval").
		Str("device_id", self.DeviceID).
		Msg("provisioning complete, device approved")

	return nil
}
