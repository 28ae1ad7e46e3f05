// Package results defines the signed, tamper-evident tally export and the
// routines to produce and check it. It is shared by the server, which signs,
// and by the admin client, which verifies offline.
package results

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"

	"github.com/dmitrijs2005/tokenvote/internal/canonjson"
	"github.com/dmitrijs2005/tokenvote/internal/common"
	"github.com/dmitrijs2005/tokenvote/internal/cryptox"
)

// Algorithm is recorded in every payload.
const Algorithm = "ed25519"

// HowToVerify travels with each export for auditors without this tool.
const HowToVerify = "Serialize payload with the JSON Canonicalization Scheme (RFC 8785: " +
	"keys sorted at every level, no whitespace, minimal string escaping) and check the " +
	"hex-decoded Ed25519 signature over those UTF-8 bytes with the PEM public key."

// CandidateRef is the roster entry included in an export: id and display name only.
type CandidateRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Payload is the signed content of an export.
type Payload struct {
	GeneratedAt   string           `json:"generated_at"`
	Candidates    []CandidateRef   `json:"candidates"`
	Totals        map[string]int64 `json:"totals"`
	TotalRedeemed int64            `json:"total_redeemed"`
	Algorithm     string           `json:"algorithm"`
}

// SignedResult is what export returns: payload, signature and verification key.
type SignedResult struct {
	Payload      Payload `json:"payload"`
	SignatureHex string  `json:"signature_hex"`
	PublicKeyPEM string  `json:"public_key_pem"`
	HowToVerify  string  `json:"how_to_verify"`
}

// Canonical returns the exact bytes that are signed for p.
func Canonical(p Payload) ([]byte, error) {
	return canonjson.Marshal(p)
}

// Sign canonicalises p and signs it with priv.
func Sign(priv ed25519.PrivateKey, pubPEM []byte, p Payload) (*SignedResult, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return nil, common.ErrPrivateKeyMissing
	}
	msg, err := Canonical(p)
	if err != nil {
		return nil, fmt.Errorf("canonical serialization: %w", err)
	}
	sig := ed25519.Sign(priv, msg)
	return &SignedResult{
		Payload:      p,
		SignatureHex: hex.EncodeToString(sig),
		PublicKeyPEM: string(pubPEM),
		HowToVerify:  HowToVerify,
	}, nil
}

// Verify re-serialises the payload and checks the signature against the
// embedded public key. Any altered field yields common.ErrInvalidSignature.
func Verify(r *SignedResult) error {
	if r == nil {
		return fmt.Errorf("%w: empty result", common.ErrInvalidSignature)
	}
	pub, err := cryptox.ParsePublicKeyPEM([]byte(r.PublicKeyPEM))
	if err != nil {
		return err
	}
	return VerifyWithKey(r, pub)
}

// VerifyWithKey is Verify against a key obtained out of band, which is what an
// auditor should do rather than trusting the key shipped inside the export.
func VerifyWithKey(r *SignedResult, pub ed25519.PublicKey) error {
	sig, err := hex.DecodeString(r.SignatureHex)
	if err != nil {
		return fmt.Errorf("%w: signature is not hex", common.ErrInvalidSignature)
	}
	msg, err := Canonical(r.Payload)
	if err != nil {
		return fmt.Errorf("canonical serialization: %w", err)
	}
	if !ed25519.Verify(pub, msg, sig) {
		return common.ErrInvalidSignature
	}
	return nil
}
