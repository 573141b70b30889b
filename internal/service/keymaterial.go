package service

import (
	"context"
	"fmt"

	"github.com/pswdapp/vaultcore/internal/store"
	"github.com/pswdapp/vaultcore/models"
)

// putWrapped persists wrapped key material. Secret slots are written through
// this path only, as [models.EncryptedKeyBlob] values: a raw private key has
// no route into the store.
func putWrapped(ctx context.Context, keys store.KeyStore, blobs []models.EncryptedKeyBlob) error {
	for _, b := range blobs {
		if err := keys.Put(ctx, b.Kind, b.Blob); err != nil {
			return fmt.Errorf("store %s: %w", b.Kind, err)
		}
	}
	return nil
}
