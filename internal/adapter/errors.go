package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("registry rejected request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrDeviceNotApproved   = errors.New("device not approved by registry")
	ErrNotFound            = errors.New("not found on registry")
	ErrConflict            = errors.New("registry conflict")
	ErrRegistryUnavailable = errors.New("registry unavailable")
)
