package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"

	sdk "github.com/pushchain/tl-lottery/types"
)

// HashLength is the size of commitments and entropy values.
const HashLength = 32

// Hash is a keccak256 digest.
type Hash [HashLength]byte

// Keccak256 hashes the concatenation of data.
func Keccak256(data ...[]byte) Hash {
	var h Hash
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	d.Sum(h[:0])
	return h
}

// ParseHash decodes a 0x-prefixed (or bare) 64 character hex string.
func ParseHash(s string) (Hash, error) {
	var h Hash

	raw := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(raw) != 2*HashLength {
		return h, errorsmod.Wrapf(ErrInvalidCommitment, "expected %d hex characters, got %d", 2*HashLength, len(raw))
	}
	if _, err := hex.Decode(h[:], []byte(raw)); err != nil {
		return h, errorsmod.Wrapf(ErrInvalidCommitment, "%s", err)
	}
	return h, nil
}

// HashFromBytes copies a 32 byte slice into a Hash.
func HashFromBytes(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HashLength {
		return h, errorsmod.Wrapf(ErrInvalidCommitment, "expected %d bytes, got %d", HashLength, len(b))
	}
	copy(h[:], b)
	return h, nil
}

func (h Hash) Bytes() []byte { return h[:] }

func (h Hash) IsZero() bool { return h == Hash{} }

func (h Hash) String() string { return "0x" + hex.EncodeToString(h[:]) }

// Xor returns h ^ o.
func (h Hash) Xor(o Hash) Hash {
	var out Hash
	for i := range out {
		out[i] = h[i] ^ o[i]
	}
	return out
}

// Big reads h as a big-endian 256-bit unsigned integer.
func (h Hash) Big() *uint256.Int {
	return new(uint256.Int).SetBytes32(h[:])
}

func (h Hash) MarshalJSON() ([]byte, error) { return json.Marshal(h.String()) }

func (h *Hash) UnmarshalJSON(bz []byte) error {
	var s string
	if err := json.Unmarshal(bz, &s); err != nil {
		return err
	}
	parsed, err := ParseHash(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ComputeCommitment binds secret to owner: keccak256(uint256(secret) ‖
// owner), the packed encoding of (uint256, address).
func ComputeCommitment(secret *uint256.Int, owner sdk.Address) Hash {
	word := secret.Bytes32()
	return Keccak256(word[:], owner[:])
}

// EntropyOf is the contribution of a revealed secret to its round entropy.
func EntropyOf(secret *uint256.Int) Hash {
	word := secret.Bytes32()
	return Keccak256(word[:])
}

// ParseSecret accepts a decimal or 0x-prefixed hexadecimal 256-bit value.
func ParseSecret(s string) (*uint256.Int, error) {
	z := new(uint256.Int)
	if err := z.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return nil, fmt.Errorf("invalid secret %q: %w", s, err)
	}
	return z, nil
}
