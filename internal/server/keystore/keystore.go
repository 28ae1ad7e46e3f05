// Package keystore keeps the Ed25519 signing pair on disk.
package keystore

import (
	"crypto/ed25519"
	"fmt"
	"os"

	"github.com/dmitrijs2005/tokenvote/internal/common"
	"github.com/dmitrijs2005/tokenvote/internal/cryptox"
	"github.com/dmitrijs2005/tokenvote/internal/filex"
)

// Store reads and creates the PEM files at fixed paths.
type Store struct {
	privPath string
	pubPath  string
}

func New(privPath, pubPath string) *Store {
	return &Store{privPath: privPath, pubPath: pubPath}
}

// Ensure makes sure a usable pair exists and reports whether it generated one.
// An existing private key is never replaced; a missing public key is derived
// from it. A public key without its private key is refused, since generating
// a new pair would silently invalidate whatever was published.
func (s *Store) Ensure() (bool, error) {
	hasPriv, err := filex.Exists(s.privPath)
	if err != nil {
		return false, err
	}
	hasPub, err := filex.Exists(s.pubPath)
	if err != nil {
		return false, err
	}

	switch {
	case hasPriv && hasPub:
		_, _, err := s.Load()
		return false, err

	case hasPriv:
		priv, err := s.loadPrivate()
		if err != nil {
			return false, err
		}
		pubPEM, err := cryptox.MarshalPublicKeyPEM(priv.Public().(ed25519.PublicKey))
		if err != nil {
			return false, err
		}
		return false, filex.WriteFileAtomic(s.pubPath, pubPEM, 0o644)

	case hasPub:
		return false, fmt.Errorf("%w: %s exists without %s", common.ErrPrivateKeyMissing, s.pubPath, s.privPath)
	}

	privPEM, pubPEM, err := cryptox.GenerateEd25519()
	if err != nil {
		return false, fmt.Errorf("generate key pair: %w", err)
	}
	if err := filex.WriteFileAtomic(s.privPath, privPEM, 0o600); err != nil {
		return false, err
	}
	if err := filex.WriteFileAtomic(s.pubPath, pubPEM, 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// Load returns the private key and the public key PEM exactly as stored.
// A missing private key is common.ErrPrivateKeyMissing; unreadable or
// mismatched material is common.ErrCorruptKey.
func (s *Store) Load() (ed25519.PrivateKey, []byte, error) {
	priv, err := s.loadPrivate()
	if err != nil {
		return nil, nil, err
	}

	pubPEM, err := s.PublicKeyPEM()
	if err != nil {
		return nil, nil, err
	}
	pub, err := cryptox.ParsePublicKeyPEM(pubPEM)
	if err != nil {
		return nil, nil, err
	}
	if !pub.Equal(priv.Public()) {
		return nil, nil, fmt.Errorf("%w: public key does not match private key", common.ErrCorruptKey)
	}
	return priv, pubPEM, nil
}

// PublicKeyPEM returns the stored public key, or common.ErrorNotFound.
func (s *Store) PublicKeyPEM() ([]byte, error) {
	data, err := os.ReadFile(s.pubPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("read public key: %w", err)
	}
	return data, nil
}

func (s *Store) loadPrivate() (ed25519.PrivateKey, error) {
	data, err := os.ReadFile(s.privPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.ErrPrivateKeyMissing
		}
		return nil, fmt.Errorf("read private key: %w", err)
	}
	return cryptox.ParsePrivateKeyPEM(data)
}
