// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 pswdapp

// Package adapter provides transport-layer abstractions for communicating
// with the vaultcore registry.
//
// The primary abstraction is [RegistryClient], which decouples the service
// layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewRegistryClient]) speaking the registry's JSON API.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401, [ErrDeviceNotApproved]
// for 403).
package adapter

import (
	"context"

	"github.com/pswdapp/vaultcore/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/registry_client_mock.go -package=mock

// RegistryClient defines transport-agnostic communication with the remote
// registry holding accounts, device records and the encrypted vault store.
// Implementations are responsible for serialisation, authentication header
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
//
// Nothing that crosses this interface is ever plaintext secret material:
// entry payloads arrive pre-encrypted, key material travels only as public
// halves or device-wrapped blobs.
type RegistryClient interface {
	// SetToken stores the bearer token attached to all subsequent
	// authenticated requests. Called automatically after a successful
	// Register or Login; SetToken("") drops the session.
	SetToken(token string)

	// Token returns the bearer token currently stored in the client, or
	// an empty string if no token has been set yet.
	Token() string

	// Register creates the account and its master device in one call.
	// On success the returned session token is stored via SetToken.
	Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error)

	// Login authenticates with the derived auth verifier and the device
	// fingerprint. On success the returned session token is stored via
	// SetToken. Returns [ErrDeviceNotApproved] when the account exists
	// but this device is unknown to the registry.
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)

	// Logout invalidates the server-side session and clears the stored
	// token. Clearing happens even if the request fails.
	Logout(ctx context.Context) error

	// Me fetches the authenticated account record, including the public
	// identity keys other devices wrap material under.
	Me(ctx context.Context) (models.Account, error)

	// CreateEntry stores a new encrypted vault entry under its
	// client-assigned identifier.
	CreateEntry(ctx context.Context, entry models.VaultEntry) error

	// ListEntries fetches every vault entry of the account, payloads
	// still encrypted.
	ListEntries(ctx context.Context) ([]models.VaultEntry, error)

	// UpdateEntry replaces title, type and encrypted payload of an
	// existing entry. Returns [ErrNotFound] for an unknown identifier.
	UpdateEntry(ctx context.Context, entry models.VaultEntry) error

	// DeleteEntry removes an entry. Returns [ErrNotFound] for an unknown
	// identifier.
	DeleteEntry(ctx context.Context, entryID string) error

	// RequestDeviceApproval announces a new device to the registry and
	// returns its pending registration. Unauthenticated: the requesting
	// device has no session yet, and the submitted material is public.
	RequestDeviceApproval(ctx context.Context, req models.DeviceApprovalRequest) (models.DeviceIdentity, error)

	// PendingDevices lists devices awaiting approval for the account.
	PendingDevices(ctx context.Context) ([]models.DeviceIdentity, error)

	// ApproveDevice uploads the wrapped provisioning bundle for a pending
	// device and marks it approved.
	ApproveDevice(ctx context.Context, grant models.DeviceApprovalGrant) error

	// FetchProvision polls for the provisioning bundle left by the master
	// device. Returns [ErrNotFound] while the approval is still pending.
	// Unauthenticated: the bundle is opaque without the device private
	// key, and the requesting device cannot log in before provisioning.
	FetchProvision(ctx context.Context, req models.ProvisionFetchRequest) (models.ProvisionDelivery, error)
}
