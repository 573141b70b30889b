package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/pswdapp/vaultcore/internal/store"
	"github.com/pswdapp/vaultcore/internal/utils"
	"github.com/pswdapp/vaultcore/models"
)

// ensureInstallID returns the installation identifier feeding the device
// fingerprint, generating and persisting it on first run. The id is written
// exactly once and never regenerated, which is what keeps the fingerprint
// stable across restarts.
func ensureInstallID(ctx context.Context, keys store.KeyStore, ids *utils.UUIDGenerator) (string, error) {
	raw, err := keys.Get(ctx, models.KeyKindInstallID)
	if err == nil {
		return string(raw), nil
	}
	if !errors.Is(err, store.ErrKeyNotFound) {
		return "", fmt.Errorf("read install id: %w", err)
	}

	id := ids.Generate()
	if err = keys.Put(ctx, models.KeyKindInstallID, []byte(id)); err != nil {
		return "", fmt.Errorf("persist install id: %w", err)
	}
	return id, nil
}

// deviceAttributes collects the stable inputs to fingerprint derivation.
// No per-call randomness: the only generated component is the install id,
// and that is persisted before first use.
func deviceAttributes(ctx context.Context, keys store.KeyStore, ids *utils.UUIDGenerator) (models.DeviceAttributes, error) {
	installID, err := ensureInstallID(ctx, keys, ids)
	if err != nil {
		return models.DeviceAttributes{}, err
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown-host"
	}

	return models.DeviceAttributes{
		Hostname:  hostname,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		InstallID: installID,
	}, nil
}
