package auth

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

// A wallet address is the base58 encoding of an ed25519 public key.
// Login proves possession of the key by signing a one-shot challenge
// payload issued by the server.

// DecodeAddress decodes a base58 wallet address into its public key.
func DecodeAddress(address string) (ed25519.PublicKey, error) {
	raw, err := base58.Decode(address)
	if err != nil {
		return nil, fmt.Errorf("invalid address encoding: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("invalid address: expected %d-byte key, got %d", ed25519.PublicKeySize, len(raw))
	}
	return ed25519.PublicKey(raw), nil
}

// EncodeAddress encodes a public key as a wallet address.
func EncodeAddress(pub ed25519.PublicKey) string {
	return base58.Encode(pub)
}

// VerifyChallenge checks that signature (base58) was produced over payload
// by the key behind address.
func VerifyChallenge(address, payload, signature string) error {
	pub, err := DecodeAddress(address)
	if err != nil {
		return err
	}

	sig, err := base58.Decode(signature)
	if err != nil {
		return fmt.Errorf("invalid signature encoding: %w", err)
	}
	if len(sig) != ed25519.SignatureSize {
		return fmt.Errorf("invalid signature: expected %d bytes, got %d", ed25519.SignatureSize, len(sig))
	}

	if !ed25519.Verify(pub, []byte(payload), sig) {
		return fmt.Errorf("signature verification failed")
	}
	return nil
}
