package service

import (
	"errors"

	"github.com/pswdapp/vaultcore/internal/adapter"
)

// mapAdapterError translates the adapter's transport error into a service
// business error. Errors that already are business errors (or that the
// caller wants to inspect as-is) pass through unchanged.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		return ErrInvalidCredentials

	case errors.Is(err, adapter.ErrDeviceNotApproved):
		return ErrDeviceNotApproved

	case errors.Is(err, adapter.ErrConflict):
		return ErrUsernameTaken

	case errors.Is(err, adapter.ErrRegistryUnavailable):
		return ErrStorageUnavailable
	}

	return err
}
