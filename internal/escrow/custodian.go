// Package escrow implements the fund custodian. Vault addresses are derived
// from the job id plus a stored nonce under a service-held secret, so release
// authority belongs to program logic, never to a caller-held key.
package escrow

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"

	"github.com/freelance-market/backend/internal/apperr"
)

type Custodian struct {
	secret []byte
}

func NewCustodian(secret string) *Custodian {
	return &Custodian{secret: []byte(secret)}
}

// NewNonce returns a fresh derivation nonce to store on the job post.
func NewNonce() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// VaultAddress derives the vault address for a job. The same (job, nonce)
// pair always derives the same address.
func (c *Custodian) VaultAddress(jobID uuid.UUID, nonce string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte("escrow"))
	mac.Write(jobID[:])
	mac.Write([]byte(nonce))
	return base58.Encode(mac.Sum(nil))
}

// ReleaseVoucher authorizes exactly one escrow release. It can only be
// minted by Authorize; the unexported tag keeps callers from forging one.
type ReleaseVoucher struct {
	JobID uuid.UUID
	Vault string
	tag   []byte
}

// Authorize re-derives the vault address from the stored nonce and mints a
// release voucher. A derivation mismatch means the stored custody record is
// corrupt and fails EscrowMismatch.
func (c *Custodian) Authorize(jobID uuid.UUID, nonce, vault string) (ReleaseVoucher, error) {
	derived := c.VaultAddress(jobID, nonce)
	if !hmac.Equal([]byte(derived), []byte(vault)) {
		return ReleaseVoucher{}, fmt.Errorf("%w: vault does not match derivation for job %s", apperr.ErrEscrowMismatch, jobID)
	}

	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte("release"))
	mac.Write(jobID[:])
	mac.Write([]byte(vault))
	return ReleaseVoucher{JobID: jobID, Vault: vault, tag: mac.Sum(nil)}, nil
}

// Verify checks that a voucher was minted by this custodian.
func (c *Custodian) Verify(v ReleaseVoucher) bool {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte("release"))
	mac.Write(v.JobID[:])
	mac.Write([]byte(v.Vault))
	return hmac.Equal(v.tag, mac.Sum(nil))
}
