// Package credentials provides urlsign.CredentialSource implementations
// backed by Google service-account JSON or static values.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Errors returned while loading credentials
var (
	// ErrMissingClientEmail indicates the credential JSON has no client_email
	ErrMissingClientEmail = errors.New("credentials: missing client_email")

	// ErrMissingPrivateKey indicates the credential JSON has no private_key
	ErrMissingPrivateKey = errors.New("credentials: missing private_key")
)

// ServiceAccount is a credential source parsed from service-account JSON.
// It satisfies urlsign.CredentialSource.
type ServiceAccount struct {
	clientEmail string
	privateKey  []byte
}

func (s *ServiceAccount) GoogleAccessID() string { return s.clientEmail }
func (s *ServiceAccount) SigningKey() []byte     { return s.privateKey }

// serviceAccountFile mirrors the fields of Google's service-account JSON
// format this package needs.
type serviceAccountFile struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// FromJSON parses service-account JSON. The file must carry client_email
// and private_key; either missing is a terminal error.
func FromJSON(data []byte) (*ServiceAccount, error) {
	var f serviceAccountFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("credentials: parse service account JSON: %w", err)
	}
	if f.ClientEmail == "" {
		return nil, ErrMissingClientEmail
	}
	if f.PrivateKey == "" {
		return nil, ErrMissingPrivateKey
	}
	return &ServiceAccount{clientEmail: f.ClientEmail, privateKey: []byte(f.PrivateKey)}, nil
}

// FromFile reads and parses a service-account JSON file.
func FromFile(path string) (*ServiceAccount, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("credentials: read %s: %w", path, err)
	}
	return FromJSON(data)
}

// Static builds a credential source from an explicit email and PEM key,
// useful for tests and for callers that manage key material themselves.
func Static(clientEmail string, privateKeyPEM []byte) *ServiceAccount {
	return &ServiceAccount{clientEmail: clientEmail, privateKey: privateKeyPEM}
}
