package auth

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func fastParams() Params {
	return Params{Algorithm: "sha256", Iterations: 1000, SaltLen: 20}
}

func TestDeriveKeyKAT(t *testing.T) {
	t.Parallel()

	// RFC 7914 section 11, PBKDF2-HMAC-SHA256 with c=1, first 32 bytes.
	got, err := DeriveKey([]byte("passwd"), []byte("salt"), "sha256", 1)
	require.NoError(t, err)
	require.Equal(t, "55ac046e56e3089fec1691c22544b605f94185216dde0465e68b9d57c20dacbc", hex.EncodeToString(got))
}

func TestDeriveKeyIsDeterministic(t *testing.T) {
	t.Parallel()

	salt := []byte("0123456789abcdef0123")
	for _, alg := range []string{"sha224", "sha256", "sha384", "sha512"} {
		a, err := DeriveKey([]byte("correct horse battery staple"), salt, alg, 50)
		require.NoError(t, err)
		b, err := DeriveKey([]byte("correct horse battery staple"), salt, alg, 50)
		require.NoError(t, err)
		require.Equal(t, a, b, alg)
		require.Len(t, a, algorithms[alg]().Size(), alg)

		c, err := DeriveKey([]byte("correct horse battery staplf"), salt, alg, 50)
		require.NoError(t, err)
		require.NotEqual(t, a, c, alg)
	}
}

func TestDeriveKeyRejectsUnknownAlgorithm(t *testing.T) {
	t.Parallel()

	_, err := DeriveKey([]byte("pw"), []byte("salt"), "md5", 1)
	require.ErrorIs(t, err, ErrUnsupportedHash)
}

func TestHashPasswordEncoding(t *testing.T) {
	t.Parallel()

	encoded, err := HashPassword([]byte("s3cret-pass"), fastParams())
	require.NoError(t, err)

	parts := strings.Split(encoded, "$")
	require.Len(t, parts, 4)
	require.Equal(t, "sha256", parts[0])
	require.Equal(t, "1000", parts[1])
	require.Len(t, parts[2], 40)
	require.Len(t, parts[3], 64)
	require.Equal(t, strings.ToLower(encoded), encoded)

	h, err := ParseHash(encoded)
	require.NoError(t, err)
	require.Equal(t, encoded, h.String())
}

func TestHashPasswordUsesFreshSalt(t *testing.T) {
	t.Parallel()

	a, err := HashPassword([]byte("same"), fastParams())
	require.NoError(t, err)
	b, err := HashPassword([]byte("same"), fastParams())
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	require.NoError(t, CheckPassword(a, []byte("same")))
	require.NoError(t, CheckPassword(b, []byte("same")))
}

func TestCheckPassword(t *testing.T) {
	t.Parallel()

	encoded, err := HashPassword([]byte("hunter22"), fastParams())
	require.NoError(t, err)

	require.NoError(t, CheckPassword(encoded, []byte("hunter22")))
	require.Error(t, CheckPassword(encoded, []byte("hunter23")))
	require.Error(t, CheckPassword(encoded, []byte("")))
}

func TestParseHashRejectsMalformed(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"empty":           "",
		"too few fields":  "sha256$1000$abcd",
		"too many fields": "sha256$1000$ab$cd$ef",
		"unknown alg":     "md5$1000$abcd$abcd",
		"bad iterations":  "sha256$many$abcd$abcd",
		"zero iterations": "sha256$0$abcd$abcd",
		"non-hex salt":    "sha256$1000$zz$abcd",
		"empty derived":   "sha256$1000$abcd$",
	}
	for name, encoded := range tests {
		_, err := ParseHash(encoded)
		require.ErrorIs(t, err, ErrMalformedHash, name)
	}
}

func TestParamsValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, DefaultParams().Validate())

	p := DefaultParams()
	p.SaltLen = 8
	require.ErrorIs(t, p.Validate(), ErrInvalidHashParams)

	p = DefaultParams()
	p.Iterations = 0
	require.ErrorIs(t, p.Validate(), ErrInvalidHashParams)

	p = DefaultParams()
	p.Algorithm = "sha1"
	require.ErrorIs(t, p.Validate(), ErrUnsupportedHash)
}
