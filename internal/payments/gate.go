package payments

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/srplumbing/srbill/internal/storage"
)

// Gate guards payment detail views behind a passphrase.
//
// This is screen privacy for a shared shop machine, not access control:
// anyone with the database file can read the payments collection
// directly. The passphrase is stored as a bcrypt hash rather than the
// plaintext the original kept, but no audited security guarantee is
// intended or provided.
type Gate struct {
	store    *storage.Store
	unlocked bool
}

const (
	gateKey           = "payment_password"
	defaultPassphrase = "admin123"
	minPassphraseLen  = 4
)

// Gate errors.
var (
	ErrWrongPassphrase = errors.New("incorrect passphrase")
	ErrShortPassphrase = fmt.Errorf("passphrase must be at least %d characters", minPassphraseLen)
)

// NewGate creates a locked gate on the given store.
func NewGate(st *storage.Store) *Gate {
	return &Gate{store: st}
}

// Unlock compares pass against the stored passphrase and, on success,
// unlocks the gate for the rest of the session. On first use the
// default passphrase is seeded.
func (g *Gate) Unlock(pass string) error {
	hash, err := g.currentHash()
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(pass)) != nil {
		return ErrWrongPassphrase
	}
	g.unlocked = true
	return nil
}

// Lock relocks the gate for the current session.
func (g *Gate) Lock() {
	g.unlocked = false
}

// Unlocked reports whether payment details are visible this session.
func (g *Gate) Unlocked() bool {
	return g.unlocked
}

// Change replaces the passphrase. The current passphrase must match and
// the new one must meet the minimum length.
func (g *Gate) Change(current, next string) error {
	hash, err := g.currentHash()
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(current)) != nil {
		return ErrWrongPassphrase
	}
	if len(next) < minPassphraseLen {
		return ErrShortPassphrase
	}
	return g.writeHash(next)
}

// currentHash returns the stored passphrase hash, seeding the default
// passphrase on first use.
func (g *Gate) currentHash() ([]byte, error) {
	stored, ok, err := g.store.ReadSetting(gateKey)
	if err != nil {
		return nil, err
	}
	if ok {
		return []byte(stored), nil
	}
	if err := g.writeHash(defaultPassphrase); err != nil {
		return nil, err
	}
	stored, _, err = g.store.ReadSetting(gateKey)
	if err != nil {
		return nil, err
	}
	return []byte(stored), nil
}

func (g *Gate) writeHash(pass string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash passphrase: %w", err)
	}
	return g.store.WriteSetting(gateKey, string(hash))
}
