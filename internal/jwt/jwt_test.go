package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testKey     *rsa.PrivateKey
	testKeyOnce sync.Once
)

func setupKeys(t *testing.T) {
	t.Helper()

	testKeyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		testKey = key
	})

	SetKeys(&testKey.PublicKey, testKey)
}

func signClaims(t *testing.T, claims jwtgo.RegisteredClaims) string {
	t.Helper()

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, claims)
	signed, err := token.SignedString(privateKey)
	require.NoError(t, err)
	return signed
}

func TestSignAndValidateUserID(t *testing.T) {
	setupKeys(t)

	sign, err := Sign(18)
	assert.NoError(t, err)

	id, err := ValidUserID(sign)
	assert.NoError(t, err)
	assert.Equal(t, int64(18), id)
}

func TestValidUserID_InvalidAudience(t *testing.T) {
	setupKeys(t)

	signedToken := signClaims(t, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{"different-audience"},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   Issuer,
		Subject:  "15",
	})

	id, err := ValidUserID(signedToken)
	assert.EqualError(t, err, "invalid audience")
	assert.Equal(t, int64(0), id)
}

func TestValidUserID_InvalidIssuer(t *testing.T) {
	setupKeys(t)

	signedToken := signClaims(t, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   "invalid-issuer",
		Subject:  "15",
	})

	id, err := ValidUserID(signedToken)
	assert.EqualError(t, err, "invalid issuer")
	assert.Equal(t, int64(0), id)
}

func TestValidUserID_Expired(t *testing.T) {
	setupKeys(t)

	signedToken := signClaims(t, jwtgo.RegisteredClaims{
		Audience:  jwtgo.ClaimStrings{Audience},
		ID:        uuid.New().String(),
		IssuedAt:  jwtgo.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwtgo.NewNumericDate(time.Now().Add(-1 * time.Hour)),
		Issuer:    Issuer,
		Subject:   "15",
	})

	id, err := ValidUserID(signedToken)
	assert.True(t, errors.Is(err, jwtgo.ErrTokenExpired), "got %v", err)
	assert.Equal(t, int64(0), id)
}

func TestValidUserID_HMAC(t *testing.T) {
	setupKeys(t)

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		Issuer:   Issuer,
		Subject:  "15",
	})
	signed, err := token.SignedString([]byte("shared"))
	require.NoError(t, err)

	_, err = ValidUserID(signed)
	assert.Error(t, err)
}

func TestLoadKeys(t *testing.T) {
	a := assert.New(t)
	setupKeys(t)

	dir := t.TempDir()
	pubBytes, err := x509.MarshalPKIXPublicKey(&testKey.PublicKey)
	require.NoError(t, err)

	pubPath := filepath.Join(dir, "public.pem")
	privPath := filepath.Join(dir, "private.key")
	require.NoError(t, os.WriteFile(pubPath, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes}), 0600))
	require.NoError(t, os.WriteFile(privPath, pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(testKey)}), 0600))

	SetKeys(nil, nil)
	a.NoError(LoadKeys(pubPath, ""))
	_, err = Sign(1)
	a.EqualError(err, "no private key is loaded")

	a.NoError(LoadKeys(pubPath, privPath))
	signed, err := Sign(7)
	a.NoError(err)
	id, err := ValidUserID(signed)
	a.NoError(err)
	a.Equal(int64(7), id)

	a.Error(LoadKeys(filepath.Join(dir, "missing.pem"), privPath))
}
