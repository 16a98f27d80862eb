// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// HashParams are the argon2id cost parameters. Tunable at startup,
// immutable afterwards.
type HashParams struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

func DefaultHashParams() HashParams {
	return HashParams{
		Time:    1,
		Memory:  64 * 1024,
		Threads: 4,
		KeyLen:  32,
		SaltLen: 16,
	}
}

// Hasher derives and verifies salted password digests. Verification is
// deterministic for a given digest; a mismatch returns false, never an
// error.
type Hasher struct {
	params    HashParams
	dummyHash string
}

func NewHasher(params HashParams) (*Hasher, error) {
	h := &Hasher{params: params}

	// Pre-compute a digest so verification against an absent account
	// costs the same as against a real one.
	dummy, err := h.Hash("timing-equalization-placeholder")
	if err != nil {
		return nil, fmt.Errorf("generate dummy hash: %w", err)
	}
	h.dummyHash = dummy

	return h, nil
}

func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	digest := argon2.IDKey(
		[]byte(password),
		salt,
		h.params.Time,
		h.params.Memory,
		h.params.Threads,
		h.params.KeyLen,
	)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Time,
		h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)

	return encoded, nil
}

func (h *Hasher) Verify(password, encodedHash string) (bool, error) {
	params, salt, digest, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	otherDigest := argon2.IDKey(
		[]byte(password),
		salt,
		params.Time,
		params.Memory,
		params.Threads,
		params.KeyLen,
	)

	return subtle.ConstantTimeCompare(digest, otherDigest) == 1, nil
}

// VerifyTimingSafe verifies against the stored digest, or against a
// pre-computed dummy when the account does not exist, so the caller
// cannot distinguish "unknown email" from "wrong password" by timing.
// A nil or empty digest always yields false.
func (h *Hasher) VerifyTimingSafe(password string, encodedHash *string) bool {
	digest := h.dummyHash
	if encodedHash != nil && *encodedHash != "" {
		digest = *encodedHash
	}

	valid, err := h.Verify(password, digest)
	if err != nil {
		valid = false
	}

	if encodedHash == nil || *encodedHash == "" {
		return false
	}

	return valid
}

func decodeHash(encodedHash string) (*HashParams, []byte, []byte, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return nil, nil, nil, fmt.Errorf("invalid hash format")
	}

	if parts[1] != "argon2id" {
		return nil, nil, nil, fmt.Errorf("unsupported algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid version: %w", err)
	}

	if version != argon2.Version {
		return nil, nil, nil, fmt.Errorf("incompatible version: %d", version)
	}

	params := &HashParams{}
	_, err := fmt.Sscanf(
		parts[3],
		"m=%d,t=%d,p=%d",
		&params.Memory,
		&params.Time,
		&params.Threads,
	)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid params: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("decode salt: %w", err)
	}

	digest, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("decode hash: %w", err)
	}

	//nolint:gosec // G115: digest length is always small (32 bytes)
	params.KeyLen = uint32(len(digest))

	return params, salt, digest, nil
}
