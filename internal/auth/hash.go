package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	DefaultAlgorithm  = "sha256"
	DefaultIterations = 600000
	DefaultSaltLen    = 20
	MinSaltLen        = 16

	hashSeparator = "$"
)

var (
	ErrMalformedHash     = errors.New("malformed password hash")
	ErrUnsupportedHash   = errors.New("unsupported hash algorithm")
	ErrInvalidHashParams = errors.New("invalid password hash parameters")
	errPasswordMismatch  = errors.New("password does not match")
)

// algorithms maps the PRF names stored in encoded hashes to HMAC hash constructors.
var algorithms = map[string]func() hash.Hash{
	"sha224": sha256.New224,
	"sha256": sha256.New,
	"sha384": sha512.New384,
	"sha512": sha512.New,
}

// Params controls how new password hashes are derived.
type Params struct {
	Algorithm  string
	Iterations int
	SaltLen    int
}

// DefaultParams returns PBKDF2-HMAC-SHA256 with 600000 iterations and a 20 byte salt.
func DefaultParams() Params {
	return Params{
		Algorithm:  DefaultAlgorithm,
		Iterations: DefaultIterations,
		SaltLen:    DefaultSaltLen,
	}
}

func (p Params) Validate() error {
	switch {
	case algorithms[p.Algorithm] == nil:
		return fmt.Errorf("%w: %q", ErrUnsupportedHash, p.Algorithm)
	case p.Iterations < 1:
		return fmt.Errorf("%w: iterations must be > 0", ErrInvalidHashParams)
	case p.SaltLen < MinSaltLen:
		return fmt.Errorf("%w: salt length must be >= %d", ErrInvalidHashParams, MinSaltLen)
	default:
		return nil
	}
}

// EncodedHash is the parsed form of algorithm$iterations$saltHex$hashHex.
type EncodedHash struct {
	Algorithm  string
	Iterations int
	Salt       []byte
	Key        []byte
}

// String encodes h with lowercase hex salt and key.
func (h *EncodedHash) String() string {
	return strings.Join([]string{
		h.Algorithm,
		strconv.Itoa(h.Iterations),
		hex.EncodeToString(h.Salt),
		hex.EncodeToString(h.Key),
	}, hashSeparator)
}

// ParseHash decodes a stored password hash.
func ParseHash(encoded string) (*EncodedHash, error) {
	parts := strings.Split(encoded, hashSeparator)
	if len(parts) != 4 {
		return nil, fmt.Errorf("%w: expected 4 fields, got %d", ErrMalformedHash, len(parts))
	}

	if algorithms[parts[0]] == nil {
		return nil, fmt.Errorf("%w: %w: %q", ErrMalformedHash, ErrUnsupportedHash, parts[0])
	}

	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations < 1 {
		return nil, fmt.Errorf("%w: bad iteration count %q", ErrMalformedHash, parts[1])
	}

	salt, err := hex.DecodeString(parts[2])
	if err != nil || len(salt) == 0 {
		return nil, fmt.Errorf("%w: bad salt", ErrMalformedHash)
	}

	key, err := hex.DecodeString(parts[3])
	if err != nil || len(key) == 0 {
		return nil, fmt.Errorf("%w: bad derived key", ErrMalformedHash)
	}

	return &EncodedHash{
		Algorithm:  parts[0],
		Iterations: iterations,
		Salt:       salt,
		Key:        key,
	}, nil
}

// DeriveKey runs PBKDF2 with the named PRF. The key length is the PRF digest size.
// password is read, never retained; the caller owns wiping it.
func DeriveKey(password []byte, salt []byte, algorithm string, iterations int) ([]byte, error) {
	newHash := algorithms[algorithm]
	if newHash == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedHash, algorithm)
	}
	if iterations < 1 {
		return nil, fmt.Errorf("%w: iterations must be > 0", ErrInvalidHashParams)
	}

	return pbkdf2.Key(password, salt, iterations, newHash().Size(), newHash), nil
}

// HashPassword derives a new encoded hash with a fresh random salt.
func HashPassword(password []byte, params Params) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}

	salt := make([]byte, params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key, err := DeriveKey(password, salt, params.Algorithm, params.Iterations)
	if err != nil {
		return "", err
	}

	h := &EncodedHash{
		Algorithm:  params.Algorithm,
		Iterations: params.Iterations,
		Salt:       salt,
		Key:        key,
	}
	return h.String(), nil
}

// CheckPassword re-derives the key from the parameters stored in encoded and
// compares it to the stored key in constant time.
func CheckPassword(encoded string, password []byte) error {
	h, err := ParseHash(encoded)
	if err != nil {
		return err
	}

	key, err := DeriveKey(password, h.Salt, h.Algorithm, h.Iterations)
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare(key, h.Key) != 1 {
		return errPasswordMismatch
	}
	return nil
}
