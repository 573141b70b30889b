package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pswdapp/vaultcore/internal/adapter"
	"github.com/pswdapp/vaultcore/internal/crypto"
	"github.com/pswdapp/vaultcore/internal/logger"
	"github.com/pswdapp/vaultcore/internal/store"
	"github.com/pswdapp/vaultcore/internal/utils"
	"github.com/pswdapp/vaultcore/models"
)

type registrationService struct {
	keychain   crypto.KeyChain
	params     crypto.Params
	stores     *store.Storages
	registry   adapter.RegistryClient
	session    *session
	ids        *utils.UUIDGenerator
	deviceName string
	logger     *logger.Logger
}

func newRegistrationService(
	keychain crypto.KeyChain,
	params crypto.Params,
	stores *store.Storages,
	registry adapter.RegistryClient,
	sess *session,
	ids *utils.UUIDGenerator,
	deviceName string,
	log *logger.Logger,
) *registrationService {
	return &registrationService{
		keychain:   keychain,
		params:     params,
		stores:     stores,
		registry:   registry,
		session:    sess,
		ids:        ids,
		deviceName: deviceName,
		logger:     log,
	}
}

// Register implements [RegistrationService]. The sequencing matters: every
// private key is wrapped before anything is persisted or transmitted, the
// registry receives public halves and the auth verifier only, and the local
// store receives wrapped blobs only. This device becomes the account's
// master device.
func (r *registrationService) Register(ctx context.Context, username, email, password string) (models.Account, error) {
	if username == "" || password == "" {
		return models.Account{}, fmt.Errorf("register: username and password are required")
	}

	salt, err := r.keychain.GenerateSalt()
	if err != nil {
		return models.Account{}, fmt.Errorf("register: %w", err)
	}

	masterKey, err := r.keychain.DeriveMasterKey(ctx, []byte(password), salt)
	if err != nil {
		return models.Account{}, fmt.Errorf("register: %w", err)
	}
	defer crypto.Zero(masterKey)

	identity, err := r.keychain.GenerateIdentityKeys()
	if err != nil {
		return models.Account{}, fmt.Errorf("register: %w", err)
	}
	defer crypto.Zero(identity.EncryptionPrivate, identity.SigningPrivate)

	device, err := r.keychain.GenerateDeviceKeys()
	if err != nil {
		return models.Account{}, fmt.Errorf("register: %w", err)
	}
	defer crypto.Zero(device.Private)

	wrapped := make([]models.EncryptedKeyBlob, 0, 3)
	for kind, plain := range map[models.KeyKind][]byte{
		models.KeyKindEncryption: identity.EncryptionPrivate,
		models.KeyKindSigning:    identity.SigningPrivate,
		models.KeyKindDevice:     device.Private,
	} {
		blob, werr := r.keychain.Wrap(plain, masterKey)
		if werr != nil {
			return models.Account{}, fmt.Errorf("register: wrap %s: %w", kind, werr)
		}
		wrapped = append(wrapped, models.EncryptedKeyBlob{Kind: kind, Blob: blob})
	}

	verifier, err := r.keychain.AuthVerifier(masterKey)
	if err != nil {
		return models.Account{}, fmt.Errorf("register: %w", err)
	}

	attrs, err := deviceAttributes(ctx, r.stores.Keys, r.ids)
	if err != nil {
		return models.Account{}, fmt.Errorf("register: %w", err)
	}
	fingerprint := crypto.Fingerprint(attrs)

	bundle := models.RegistrationBundle{
		Username:            username,
		Email:               email,
		PublicEncryptionKey: base64.StdEncoding.EncodeToString(identity.EncryptionPublic),
		PublicSigningKey:    base64.StdEncoding.EncodeToString(identity.SigningPublic),
		PublicDeviceKey:     base64.StdEncoding.EncodeToString(device.Public),
		DeviceName:          r.deviceName,
		Fingerprint:         fingerprint,
	}

	resp, err := r.registry.Register(ctx, models.RegisterRequest{RegistrationBundle: bundle, Password: verifier})
	if err != nil {
		return models.Account{}, fmt.Errorf("register: %w", mapAdapterError(err))
	}

	account := models.Account{
		UserID:                 resp.UserID,
		Username:               resp.Username,
		Email:                  email,
		PublicEncryptionKey:    bundle.PublicEncryptionKey,
		PublicSigningKey:       bundle.PublicSigningKey,
		PasswordSalt:           base64.StdEncoding.EncodeToString(salt),
		MasterDeviceRegistered: true,
	}

	if err = r.persist(ctx, account, salt, wrapped, identity.EncryptionPublic, identity.SigningPublic, device.Public, resp.DeviceID, fingerprint); err != nil {
		return models.Account{}, err
	}

	r.session.adopt(
		append([]byte(nil), identity.EncryptionPrivate...),
		append([]byte(nil), identity.SigningPrivate...),
		append([]byte(nil), device.Private...),
		[]byte(verifier),
	)

	r.logger.Info().
		Str("func", "registration.Register").
		Str("user_id", account.UserID).
		Str("device_id", resp.DeviceID).
		Msg("account registered, master device established")

	return account, nil
}

// persist writes the non-secret parameters and public keys, the wrapped key
// blobs and the self device row. The device row is promoted to master in its
// own transaction so the single-master invariant holds even if a stale row
// exists from an earlier installation.
func (r *registrationService) persist(
	ctx context.Context,
	account models.Account,
	salt []byte,
	wrapped []models.EncryptedKeyBlob,
	encPublic, signPublic, devicePublic []byte,
	deviceID, fingerprint string,
) error {
	paramsJSON, err := json.Marshal(r.params)
	if err != nil {
		return fmt.Errorf("register: encode kdf params: %w", err)
	}
	accountJSON, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("register: encode account: %w", err)
	}

	rows := map[models.KeyKind][]byte{
		models.KeyKindPasswordSalt:     salt,
		models.KeyKindKDFParams:        paramsJSON,
		models.KeyKindAccount:          accountJSON,
		models.KeyKindEncryptionPublic: encPublic,
		models.KeyKindSigningPublic:    signPublic,
		models.KeyKindDevicePublic:     devicePublic,
	}
	for kind, value := range rows {
		if err = r.stores.Keys.Put(ctx, kind, value); err != nil {
			return fmt.Errorf("register: store %s: %w", kind, err)
		}
	}
	if err = putWrapped(ctx, r.stores.Keys, wrapped); err != nil {
		return fmt.Errorf("register: %w", err)
	}

	self := models.DeviceIdentity{
		DeviceID:        deviceID,
		UserID:          account.UserID,
		Name:            r.deviceName,
		Fingerprint:     fingerprint,
		PublicDeviceKey: base64.StdEncoding.EncodeToString(devicePublic),
		IsMaster:        true,
		Status:          models.DeviceApproved,
		IsSelf:          true,
		LastSeen:        time.Now(),
	}
	if err = r.stores.Devices.SaveDevice(ctx, self); err != nil {
		return fmt.Errorf("register: store device: %w", err)
	}
	if err = r.stores.Devices.SetMaster(ctx, deviceID); err != nil {
		return fmt.Errorf("register: promote master: %w", err)
	}

	return nil
}
