// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 pswdapp

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pswdapp/vaultcore/internal/config"
	"github.com/pswdapp/vaultcore/internal/logger"
	"github.com/pswdapp/vaultcore/models"
	"github.com/sethvargo/go-retry"
)

const (
	defaultRetryBase = 200 * time.Millisecond
	defaultRetryMax  = 3
)

type registryClient struct {
	client *resty.Client

	mu      sync.RWMutex
	token   string
	session models.Token

	retryBase time.Duration
	retryMax  uint64

	logger *logger.Logger
}

// NewRegistryClient constructs the HTTP/REST implementation of
// [RegistryClient]. It normalises and validates cfg.BaseURL and configures
// the underlying HTTP client with the resolved base URL and request timeout.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid
// URL.
func NewRegistryClient(cfg config.Registry, log *logger.Logger) (RegistryClient, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid registry base url: %w", err)
	}

	cli := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	log.Debug().Str("func", "adapter.NewRegistryClient").Str("base_url", baseURL).Msg("registry client configured")

	return &registryClient{
		client:    cli,
		retryBase: defaultRetryBase,
		retryMax:  defaultRetryMax,
		logger:    log,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [RegistryClient]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent authenticated
// requests, and parses its claims so the client knows its own identifiers
// and the session expiry.
func (c *registryClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
	c.session = models.Token{}
	if c.token == "" {
		return
	}

	parsed, err := models.ParseToken(c.token)
	if err != nil {
		c.logger.Warn().Err(err).Msg("registry issued a token with unreadable claims")
		return
	}
	c.session = parsed
}

// Session returns the parsed view of the current token. Zero when no token
// is set or its claims could not be read.
func (c *registryClient) Session() models.Token {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// Token implements [RegistryClient]. It returns the bearer token currently
// held by the client, or an empty string if none has been set.
func (c *registryClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Register implements [RegistryClient]. It POSTs the registration payload to
// POST /api/auth/register and stores the returned session token via
// SetToken. Returns [ErrConflict] when the username or email is taken.
func (c *registryClient) Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error) {
	var out models.RegisterResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&out).
		Post("/api/auth/register")
	if err != nil {
		return models.RegisterResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RegisterResponse{}, err
	}

	if out.Token == "" {
		return models.RegisterResponse{}, fmt.Errorf("register: registry returned no session token")
	}

	c.SetToken(out.Token)
	return out, nil
}

// Login implements [RegistryClient]. It POSTs the auth verifier and device
// fingerprint to POST /api/auth/login and stores the returned session token
// via SetToken. A 401 maps to [ErrUnauthorized] (wrong credentials), a 403
// to [ErrDeviceNotApproved] (account ok, device unknown).
func (c *registryClient) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	var out models.LoginResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&out).
		Post("/api/auth/login")
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	if out.Token == "" {
		return models.LoginResponse{}, fmt.Errorf("login: registry returned no session token")
	}

	c.SetToken(out.Token)
	return out, nil
}

// Logout implements [RegistryClient]. It POSTs to POST /api/auth/logout and
// clears the stored token regardless of the outcome; a dead registry must
// not keep a session alive client-side.
func (c *registryClient) Logout(ctx context.Context) error {
	defer c.SetToken("")

	resp, err := c.authedRequest(ctx).Post("/api/auth/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}

	return mapHTTPError(resp)
}

// Me implements [RegistryClient]. It GETs the authenticated account record
// from GET /api/user/me.
func (c *registryClient) Me(ctx context.Context) (models.Account, error) {
	var account models.Account

	resp, err := c.doWithRetry(ctx, func(ctx context.Context) (*resty.Response, error) {
		return c.authedRequest(ctx).SetResult(&account).Get("/api/user/me")
	})
	if err != nil {
		return models.Account{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Account{}, err
	}

	return account, nil
}

// CreateEntry implements [RegistryClient]. It POSTs the encrypted entry to
// POST /api/vault/entries under its client-assigned identifier.
func (c *registryClient) CreateEntry(ctx context.Context, entry models.VaultEntry) error {
	resp, err := c.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(entryRequest(entry)).
		Post("/api/vault/entries")
	if err != nil {
		return fmt.Errorf("create entry request: %w", err)
	}

	return mapHTTPError(resp)
}

// ListEntries implements [RegistryClient]. It GETs every entry of the
// account from GET /api/vault/entries, payloads still encrypted.
func (c *registryClient) ListEntries(ctx context.Context) ([]models.VaultEntry, error) {
	resp, err := c.doWithRetry(ctx, func(ctx context.Context) (*resty.Response, error) {
		return c.authedRequest(ctx).Get("/api/vault/entries")
	})
	if err != nil {
		return nil, fmt.Errorf("list entries request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var entries []models.VaultEntry
	if err = json.Unmarshal(resp.Body(), &entries); err != nil {
		return nil, fmt.Errorf("decode entries response: %w", err)
	}

	return entries, nil
}

// UpdateEntry implements [RegistryClient]. It PUTs the new title, type and
// encrypted payload to PUT /api/vault/entries/{entryID}. Returns
// [ErrNotFound] for an unknown identifier.
func (c *registryClient) UpdateEntry(ctx context.Context, entry models.VaultEntry) error {
	resp, err := c.doWithRetry(ctx, func(ctx context.Context) (*resty.Response, error) {
		return c.authedRequest(ctx).
			SetHeader("Content-Type", "application/json").
			SetPathParam("entryID", entry.EntryID).
			SetBody(entryRequest(entry)).
			Put("/api/vault/entries/{entryID}")
	})
	if err != nil {
		return fmt.Errorf("update entry request: %w", err)
	}

	return mapHTTPError(resp)
}

// DeleteEntry implements [RegistryClient]. It DELETEs the entry via
// DELETE /api/vault/entries/{entryID}. Returns [ErrNotFound] for an unknown
// identifier.
func (c *registryClient) DeleteEntry(ctx context.Context, entryID string) error {
	resp, err := c.doWithRetry(ctx, func(ctx context.Context) (*resty.Response, error) {
		return c.authedRequest(ctx).
			SetPathParam("entryID", entryID).
			Delete("/api/vault/entries/{entryID}")
	})
	if err != nil {
		return fmt.Errorf("delete entry request: %w", err)
	}

	return mapHTTPError(resp)
}

// RequestDeviceApproval implements [RegistryClient]. It POSTs the device's
// public material to POST /api/devices/request and returns the pending
// registration assigned by the registry.
func (c *registryClient) RequestDeviceApproval(ctx context.Context, req models.DeviceApprovalRequest) (models.DeviceIdentity, error) {
	var device models.DeviceIdentity

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&device).
		Post("/api/devices/request")
	if err != nil {
		return models.DeviceIdentity{}, fmt.Errorf("request device approval: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DeviceIdentity{}, err
	}

	return device, nil
}

// PendingDevices implements [RegistryClient]. It GETs the devices awaiting
// approval from GET /api/devices/pending.
func (c *registryClient) PendingDevices(ctx context.Context) ([]models.DeviceIdentity, error) {
	resp, err := c.doWithRetry(ctx, func(ctx context.Context) (*resty.Response, error) {
		return c.authedRequest(ctx).Get("/api/devices/pending")
	})
	if err != nil {
		return nil, fmt.Errorf("pending devices request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var devices []models.DeviceIdentity
	if err = json.Unmarshal(resp.Body(), &devices); err != nil {
		return nil, fmt.Errorf("decode pending devices response: %w", err)
	}

	return devices, nil
}

// ApproveDevice implements [RegistryClient]. It POSTs the wrapped
// provisioning bundle to POST /api/devices/{deviceID}/approve, marking the
// device approved.
func (c *registryClient) ApproveDevice(ctx context.Context, grant models.DeviceApprovalGrant) error {
	resp, err := c.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("deviceID", grant.DeviceID).
		SetBody(grant).
		Post("/api/devices/{deviceID}/approve")
	if err != nil {
		return fmt.Errorf("approve device request: %w", err)
	}

	return mapHTTPError(resp)
}

// FetchProvision implements [RegistryClient]. It POSTs the device identity
// to POST /api/devices/provision and returns the wrapped bundle once the
// master has approved. A 404 ([ErrNotFound]) means the approval is still
// pending; callers poll.
func (c *registryClient) FetchProvision(ctx context.Context, req models.ProvisionFetchRequest) (models.ProvisionDelivery, error) {
	var delivery models.ProvisionDelivery

	resp, err := c.doWithRetry(ctx, func(ctx context.Context) (*resty.Response, error) {
		return c.client.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(req).
			SetResult(&delivery).
			Post("/api/devices/provision")
	})
	if err != nil {
		return models.ProvisionDelivery{}, fmt.Errorf("fetch provision request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ProvisionDelivery{}, err
	}

	return delivery, nil
}

func (c *registryClient) authedRequest(ctx context.Context) *resty.Request {
	req := c.client.R().SetContext(ctx)
	if token := c.Token(); token != "" {
		if c.Session().Expired() {
			c.logger.Warn().Msg("session token expired, request will likely be rejected")
		}
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// doWithRetry re-sends a request on transport errors and 5xx responses with
// fibonacci backoff. Only idempotent calls go through it; auth flows and
// approval grants are sent exactly once.
func (c *registryClient) doWithRetry(ctx context.Context, send func(ctx context.Context) (*resty.Response, error)) (*resty.Response, error) {
	backoff := retry.WithMaxRetries(c.retryMax, retry.NewFibonacci(c.retryBase))

	var resp *resty.Response
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		r, err := send(ctx)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("%w: %v", ErrRegistryUnavailable, err))
		}
		if r.StatusCode() >= http.StatusInternalServerError {
			return retry.RetryableError(fmt.Errorf("%w: http %d", ErrRegistryUnavailable, r.StatusCode()))
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func entryRequest(entry models.VaultEntry) models.VaultEntryRequest {
	return models.VaultEntryRequest{
		EntryID:       entry.EntryID,
		Title:         entry.Title,
		EncryptedData: entry.EncryptedPayload,
		EntryType:     entry.EntryType,
	}
}
