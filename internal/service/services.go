package service

import (
	"os"

	"github.com/pswdapp/vaultcore/internal/adapter"
	"github.com/pswdapp/vaultcore/internal/config"
	"github.com/pswdapp/vaultcore/internal/crypto"
	"github.com/pswdapp/vaultcore/internal/logger"
	"github.com/pswdapp/vaultcore/internal/store"
	"github.com/pswdapp/vaultcore/internal/utils"
	"github.com/pswdapp/vaultcore/internal/validators"
)

// Services groups the client-side services into a single value that can be
// handed to the application layer.
type Services struct {
	KeyChain     crypto.KeyChain
	Session      SessionService
	Registration RegistrationService
	Auth         AuthService
	DeviceTrust  DeviceTrustService
	Entries      EntryService
	AutoLock     AutoLockJob
}

// NewServices wires the service layer over the local storages and the
// registry adapter. The Argon2id parameters come from configuration and are
// recorded alongside the wrapped blobs at registration time, so later
// unlocks reproduce the exact derivation regardless of config changes.
func NewServices(storages *store.Storages, registry adapter.RegistryClient, cfg *config.StructuredConfig, log *logger.Logger) *Services {
	params := crypto.Params{
		Time:      cfg.Vault.KDFTime,
		MemoryKiB: cfg.Vault.KDFMemoryKiB,
		Threads:   cfg.Vault.KDFThreads,
	}
	if params == (crypto.Params{}) {
		params = crypto.DefaultParams()
	}
	keychain := crypto.NewKeyChainWithParams(params)

	deviceName := cfg.Vault.DeviceName
	if deviceName == "" {
		if host, err := os.Hostname(); err == nil {
			deviceName = host
		} else {
			deviceName = "vaultcore-device"
		}
	}

	ids := utils.NewUUIDGenerator()
	validator := validators.NewEntryValidator()

	sess := newSession(keychain, storages.Keys, log)

	return &Services{
		KeyChain:     keychain,
		Session:      sess,
		Registration: newRegistrationService(keychain, params, storages, registry, sess, ids, deviceName, log),
		Auth:         newAuthService(sess, storages, registry, log),
		DeviceTrust:  newDeviceTrustService(keychain, params, storages, registry, sess, ids, deviceName, cfg.Workers.ApprovalPoll, log),
		Entries:      newEntryService(keychain, storages, registry, sess, validator, ids, log),
		AutoLock:     NewAutoLockJob(sess, log),
	}
}
