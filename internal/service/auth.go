package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pswdapp/vaultcore/internal/adapter"
	"github.com/pswdapp/vaultcore/internal/logger"
	"github.com/pswdapp/vaultcore/internal/store"
	"github.com/pswdapp/vaultcore/models"
)

type authService struct {
	session  *session
	stores   *store.Storages
	registry adapter.RegistryClient
	logger   *logger.Logger
}

func newAuthService(sess *session, stores *store.Storages, registry adapter.RegistryClient, log *logger.Logger) *authService {
	return &authService{session: sess, stores: stores, registry: registry, logger: log}
}

// Login implements [AuthService]. The registry never sees the master
// password: the credential presented here is the HKDF-separated auth
// verifier held by the unlocked session.
func (a *authService) Login(ctx context.Context) error {
	verifier, err := a.session.AuthVerifier()
	if err != nil {
		return err
	}

	raw, err := a.stores.Keys.Get(ctx, models.KeyKindAccount)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return ErrKeyMaterialAbsent
		}
		return fmt.Errorf("login: %w", err)
	}
	var account models.Account
	if err = json.Unmarshal(raw, &account); err != nil {
		return fmt.Errorf("login: decode cached account: %w", err)
	}

	self, err := a.stores.Devices.Self(ctx)
	if err != nil {
		if errors.Is(err, store.ErrDeviceNotFound) {
			return ErrKeyMaterialAbsent
		}
		return fmt.Errorf("login: %w", err)
	}

	resp, err := a.registry.Login(ctx, models.LoginRequest{
		Username:    account.Username,
		Password:    verifier,
		Fingerprint: self.Fingerprint,
	})
	if err != nil {
		return fmt.Errorf("login: %w", mapAdapterError(err))
	}

	// Best effort; a failed touch must not fail the login.
	if terr := a.stores.Devices.Touch(ctx, self.DeviceID, time.Now()); terr != nil {
		a.logger.Warn().Str("func", "auth.Login").Err(terr).Msg("touch device row")
	}

	// The registry holds the authoritative account record; refresh the
	// offline cache while the token is fresh. Best effort as well.
	if fresh, merr := a.registry.Me(ctx); merr != nil {
		a.logger.Warn().Str("func", "auth.Login").Err(merr).Msg("refresh cached account")
	} else {
		// The salt is local-only material the registry never sees.
		if fresh.PasswordSalt == "" {
			fresh.PasswordSalt = account.PasswordSalt
		}
		if rawFresh, jerr := json.Marshal(fresh); jerr == nil {
			if perr := a.stores.Keys.Put(ctx, models.KeyKindAccount, rawFresh); perr != nil {
				a.logger.Warn().Str("func", "auth.Login").Err(perr).Msg("refresh cached account")
			}
		}
	}

	a.logger.Info().
		Str("func", "auth.Login").
		Str("user_id", resp.UserID).
		Str("device_id", resp.DeviceID).
		Msg("logged in to registry")

	return nil
}

// Logout implements [AuthService]. The local session is locked regardless
// of whether the registry call succeeds; the token is dropped by the
// adapter either way.
func (a *authService) Logout(ctx context.Context) error {
	err := a.registry.Logout(ctx)
	a.session.Lock()
	if err != nil {
		return fmt.Errorf("logout: %w", mapAdapterError(err))
	}
	return nil
}
