package urlsign

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// rsaSigningKey wraps a parsed RSA private key behind the Signable
// capability. *rsa.PrivateKey is safe for concurrent read-only signing, so
// one rsaSigningKey may be shared across goroutines.
type rsaSigningKey struct {
	key *rsa.PrivateKey
}

func (k rsaSigningKey) SignSHA256(message []byte) ([]byte, error) {
	digest := sha256.Sum256(message)
	return rsa.SignPKCS1v15(rand.Reader, k.key, crypto.SHA256, digest[:])
}

// NewSignable wraps an already-parsed RSA private key.
func NewSignable(key *rsa.PrivateKey) Signable {
	return rsaSigningKey{key: key}
}

// ParseSigningKey parses PEM-encoded RSA private key material (PKCS#8 as
// found in service-account JSON, or PKCS#1) into a Signable. Malformed
// material is a terminal error wrapping ErrInvalidSigningKey; it is never
// retried or swallowed.
func ParseSigningKey(pemBytes []byte) (Signable, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrInvalidSigningKey)
	}

	if parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		rsaKey, ok := parsed.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: not an RSA key", ErrInvalidSigningKey)
		}
		return rsaSigningKey{key: rsaKey}, nil
	}

	rsaKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSigningKey, err)
	}
	return rsaSigningKey{key: rsaKey}, nil
}
