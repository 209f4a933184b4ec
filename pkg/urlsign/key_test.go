package urlsign

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateTestKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func pkcs8PEM(t *testing.T, key *rsa.PrivateKey) []byte {
	t.Helper()
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
}

func pkcs1PEM(t *testing.T, key *rsa.PrivateKey) []byte {
	t.Helper()
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
}

// TestParseSigningKey tests parsing of PEM key material into a Signable
func TestParseSigningKey(t *testing.T) {
	key := generateTestKey(t)

	t.Run("PKCS8", func(t *testing.T) {
		signable, err := ParseSigningKey(pkcs8PEM(t, key))
		require.NoError(t, err)

		sig, err := signable.SignSHA256([]byte("message"))
		require.NoError(t, err)

		digest := sha256.Sum256([]byte("message"))
		assert.NoError(t, rsa.VerifyPKCS1v15(&key.PublicKey, crypto.SHA256, digest[:], sig))
	})

	t.Run("PKCS1", func(t *testing.T) {
		signable, err := ParseSigningKey(pkcs1PEM(t, key))
		require.NoError(t, err)

		sig, err := signable.SignSHA256([]byte("message"))
		require.NoError(t, err)

		digest := sha256.Sum256([]byte("message"))
		assert.NoError(t, rsa.VerifyPKCS1v15(&key.PublicKey, crypto.SHA256, digest[:], sig))
	})

	t.Run("NotPEM", func(t *testing.T) {
		_, err := ParseSigningKey([]byte("not a key"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidSigningKey)
	})

	t.Run("GarbagePEMBody", func(t *testing.T) {
		garbage := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: []byte("garbage")})
		_, err := ParseSigningKey(garbage)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidSigningKey)
	})

	t.Run("NonRSAKeyRejected", func(t *testing.T) {
		// An EC key parses as PKCS#8 but is not usable for RSA signing.
		ecDER := mustECPKCS8(t)
		_, err := ParseSigningKey(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: ecDER}))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidSigningKey)
	})
}

func mustECPKCS8(t *testing.T) []byte {
	t.Helper()
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(ecKey)
	require.NoError(t, err)
	return der
}

// TestNewSignable tests wrapping of an already-parsed key
func TestNewSignable(t *testing.T) {
	key := generateTestKey(t)
	signable := NewSignable(key)

	sig, err := signable.SignSHA256([]byte("payload"))
	require.NoError(t, err)

	digest := sha256.Sum256([]byte("payload"))
	assert.NoError(t, rsa.VerifyPKCS1v15(&key.PublicKey, crypto.SHA256, digest[:], sig))
}
