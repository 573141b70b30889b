package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pswdapp/vaultcore/internal/crypto"
	"github.com/pswdapp/vaultcore/internal/logger"
	"github.com/pswdapp/vaultcore/internal/store"
	"github.com/pswdapp/vaultcore/models"
	"golang.org/x/sync/errgroup"
)

// SessionState is the lifecycle state of a [SessionService].
type SessionState int

const (
	// StateLocked means no decrypted key material is resident.
	StateLocked SessionState = iota

	// StateUnlocking means an unlock is in flight: the master key is
	// being derived and the stored blobs unwrapped.
	StateUnlocking

	// StateUnlocked means decrypted private keys are resident in memory.
	StateUnlocked
)

// String implements fmt.Stringer.
func (s SessionState) String() string {
	switch s {
	case StateLocked:
		return "locked"
	case StateUnlocking:
		return "unlocking"
	case StateUnlocked:
		return "unlocked"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// SessionSecrets carries copies of the decrypted private keys out of the
// session for operations that need the raw bytes. The receiver owns the
// copies and must scrub them with [crypto.Zero] when done.
type SessionSecrets struct {
	EncryptionPrivate []byte
	SigningPrivate    []byte
	DevicePrivate     []byte
}

// Zero scrubs every buffer of the secrets value.
func (s SessionSecrets) Zero() {
	crypto.Zero(s.EncryptionPrivate, s.SigningPrivate, s.DevicePrivate)
}

// decoySalt feeds the full-cost derivation performed when no account exists
// on this device, so that path takes as long as a wrong-password unlock.
var decoySalt = []byte("vaultcore.decoy!")

// session implements [SessionService]. It is an explicit value owned by its
// constructor's caller; nothing about it is process-global, so tests can run
// any number of isolated sessions side by side.
type session struct {
	keychain crypto.KeyChain
	keys     store.KeyStore
	logger   *logger.Logger

	// mu serialises Unlock against Lock: a Lock issued mid-unlock blocks
	// here until the unlock finishes, then scrubs whatever it produced.
	mu sync.Mutex

	// stateMu guards the resident key material and lifecycle fields so
	// that State and the read accessors never block on a running
	// derivation.
	stateMu    sync.RWMutex
	state      SessionState
	encPriv    []byte
	signPriv   []byte
	devPriv    []byte
	verifier   []byte
	unlockedAt time.Time
	lastActive time.Time
}

// NewSession constructs a locked [SessionService] over the local key store.
func NewSession(keychain crypto.KeyChain, keys store.KeyStore, log *logger.Logger) SessionService {
	return newSession(keychain, keys, log)
}

func newSession(keychain crypto.KeyChain, keys store.KeyStore, log *logger.Logger) *session {
	return &session{
		keychain: keychain,
		keys:     keys,
		logger:   log,
		state:    StateLocked,
	}
}

// Unlock implements [SessionService].
func (s *session) Unlock(ctx context.Context, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Unlocked() {
		return nil
	}

	s.setState(StateUnlocking)
	unlocked := false
	defer func() {
		if !unlocked {
			s.setState(StateLocked)
		}
	}()

	kc, salt, localMode, err := storedKeyChain(ctx, s.keys, s.keychain)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			// No account on this device. Burn the same derivation
			// cost as a real attempt before reporting the uniform
			// failure.
			s.decoyDerive(ctx, password)
			return ErrInvalidCredentials
		}
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	masterKey, err := kc.DeriveMasterKey(ctx, []byte(password), salt)
	if err != nil {
		return fmt.Errorf("unlock: %w", err)
	}
	defer crypto.Zero(masterKey)

	blobs, err := s.readKeyBlobs(ctx)
	if err != nil {
		return err
	}

	// The three blobs are independent AEAD operations; unwrap them in
	// parallel. Any single failure fails the whole unlock.
	var encPriv, signPriv, devPriv []byte
	g := new(errgroup.Group)
	g.Go(func() (err error) {
		encPriv, err = kc.Unwrap(blobs[models.KeyKindEncryption], masterKey)
		return err
	})
	g.Go(func() (err error) {
		signPriv, err = kc.Unwrap(blobs[models.KeyKindSigning], masterKey)
		return err
	})
	g.Go(func() (err error) {
		devPriv, err = kc.Unwrap(blobs[models.KeyKindDevice], masterKey)
		return err
	})
	if err = g.Wait(); err != nil {
		crypto.Zero(encPriv, signPriv, devPriv)
		if errors.Is(err, crypto.ErrDecrypt) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("unlock: %w", err)
	}

	verifier, err := s.loadVerifier(ctx, kc, masterKey, localMode)
	if err != nil {
		crypto.Zero(encPriv, signPriv, devPriv)
		return err
	}

	s.install(encPriv, signPriv, devPriv, verifier)
	unlocked = true

	s.logger.Info().Str("func", "session.Unlock").Bool("local_mode", localMode).Msg("session unlocked")
	return nil
}

// readKeyBlobs fetches the three wrapped private-key blobs. A device that
// has a salt but no blobs is a broken installation, reported as
// [ErrKeyMaterialAbsent] rather than an invalid password.
func (s *session) readKeyBlobs(ctx context.Context) (map[models.KeyKind][]byte, error) {
	blobs := make(map[models.KeyKind][]byte, 3)
	for _, kind := range []models.KeyKind{models.KeyKindEncryption, models.KeyKindSigning, models.KeyKindDevice} {
		blob, err := s.keys.Get(ctx, kind)
		if err != nil {
			if errors.Is(err, store.ErrKeyNotFound) {
				return nil, ErrKeyMaterialAbsent
			}
			return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		blobs[kind] = blob
	}
	return blobs, nil
}

// loadVerifier produces the registry login credential for the session. A
// master device recomputes it from the master key; a provisioned secondary
// unwraps the copy delivered in its approval bundle. A secondary without a
// stored verifier can still work the vault offline, so absence is not an
// error here.
func (s *session) loadVerifier(ctx context.Context, kc crypto.KeyChain, masterKey []byte, localMode bool) ([]byte, error) {
	if !localMode {
		v, err := kc.AuthVerifier(masterKey)
		if err != nil {
			return nil, fmt.Errorf("unlock: %w", err)
		}
		return []byte(v), nil
	}

	blob, err := s.keys.Get(ctx, models.KeyKindAuthVerifier)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	v, err := kc.Unwrap(blob, masterKey)
	if err != nil {
		if errors.Is(err, crypto.ErrDecrypt) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("unlock: %w", err)
	}
	return v, nil
}

// decoyDerive burns one full-cost derivation and scrubs the result.
func (s *session) decoyDerive(ctx context.Context, password string) {
	if key, err := s.keychain.DeriveMasterKey(ctx, []byte(password), decoySalt); err == nil {
		crypto.Zero(key)
	}
}

// install takes ownership of the given buffers and transitions to Unlocked.
func (s *session) install(encPriv, signPriv, devPriv, verifier []byte) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	now := time.Now()
	s.encPriv = encPriv
	s.signPriv = signPriv
	s.devPriv = devPriv
	s.verifier = verifier
	s.unlockedAt = now
	s.lastActive = now
	s.state = StateUnlocked
}

// adopt replaces the session contents with freshly generated or delivered
// key material, used by registration and approval completion where the keys
// never passed through an unwrap. Takes ownership of the buffers.
func (s *session) adopt(encPriv, signPriv, devPriv, verifier []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scrub()
	s.install(encPriv, signPriv, devPriv, verifier)
}

// Lock implements [SessionService].
func (s *session) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Unlocked() {
		s.logger.Info().Str("func", "session.Lock").Msg("session locked")
	}
	s.scrub()
}

// Close implements [SessionService].
func (s *session) Close() { s.Lock() }

// scrub zeroizes every secret buffer and resets the lifecycle fields.
func (s *session) scrub() {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	crypto.Zero(s.encPriv, s.signPriv, s.devPriv, s.verifier)
	s.encPriv, s.signPriv, s.devPriv, s.verifier = nil, nil, nil, nil
	s.unlockedAt = time.Time{}
	s.lastActive = time.Time{}
	s.state = StateLocked
}

func (s *session) setState(state SessionState) {
	s.stateMu.Lock()
	s.state = state
	s.stateMu.Unlock()
}

// State implements [SessionService].
func (s *session) State() SessionState {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

// Unlocked implements [SessionService].
func (s *session) Unlocked() bool { return s.State() == StateUnlocked }

// UnlockedAt implements [SessionService].
func (s *session) UnlockedAt() time.Time {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.unlockedAt
}

// LastActivity implements [SessionService].
func (s *session) LastActivity() time.Time {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.lastActive
}

// EntryKey implements [SessionService]. The key is derived fresh on every
// call from the resident encryption private key and never cached, so it can
// only exist while the session is unlocked.
func (s *session) EntryKey() ([]byte, error) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	if s.state != StateUnlocked {
		return nil, ErrLocked
	}

	key, err := s.keychain.EntryKey(s.encPriv)
	if err != nil {
		return nil, fmt.Errorf("entry key: %w", err)
	}
	s.lastActive = time.Now()
	return key, nil
}

// Secrets implements [SessionService].
func (s *session) Secrets() (SessionSecrets, error) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	if s.state != StateUnlocked {
		return SessionSecrets{}, ErrLocked
	}

	s.lastActive = time.Now()
	return SessionSecrets{
		EncryptionPrivate: append([]byte(nil), s.encPriv...),
		SigningPrivate:    append([]byte(nil), s.signPriv...),
		DevicePrivate:     append([]byte(nil), s.devPriv...),
	}, nil
}

// AuthVerifier implements [SessionService].
func (s *session) AuthVerifier() (string, error) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	if s.state != StateUnlocked {
		return "", ErrLocked
	}
	if len(s.verifier) == 0 {
		return "", ErrKeyMaterialAbsent
	}
	return string(s.verifier), nil
}

// storedKeyChain resolves the key chain and KDF salt for unwrapping this
// device's blobs. A provisioned secondary wraps its material under the local
// passphrase salt; a master device uses the account password salt. The KDF
// parameters recorded at wrap time take precedence over the configured ones
// so that unlock always reproduces the registration-time derivation.
func storedKeyChain(ctx context.Context, keys store.KeyStore, fallback crypto.KeyChain) (crypto.KeyChain, []byte, bool, error) {
	localMode := true
	salt, err := keys.Get(ctx, models.KeyKindLocalWrapSalt)
	if errors.Is(err, store.ErrKeyNotFound) {
		localMode = false
		salt, err = keys.Get(ctx, models.KeyKindPasswordSalt)
	}
	if err != nil {
		return nil, nil, false, err
	}

	kc := fallback
	if raw, perr := keys.Get(ctx, models.KeyKindKDFParams); perr == nil {
		var p crypto.Params
		if json.Unmarshal(raw, &p) == nil {
			kc = crypto.NewKeyChainWithParams(p)
		}
	}
	return kc, salt, localMode, nil
}
