package urlsign

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrSignedURLUnavailable indicates no GoogleAccessId or no signing key
	// could be resolved from the options or the credential source. It is
	// raised before any signature computation starts.
	ErrSignedURLUnavailable = errors.New("urlsign: signed URL unavailable, missing GoogleAccessId or signing key")

	// ErrInvalidSigningKey indicates the supplied key material could not be
	// parsed as a PEM-encoded RSA private key.
	ErrInvalidSigningKey = errors.New("urlsign: invalid signing key material")

	// ErrPolicyNotMapping indicates the POST policy option was not a plain
	// key-value mapping.
	ErrPolicyNotMapping = errors.New("urlsign: policy must be a mapping")
)

// SignError wraps a failure in one signing operation with the resource it
// was signing for.
type SignError struct {
	Op     string
	Bucket string
	Object string
	Err    error
}

func (e *SignError) Error() string {
	return fmt.Sprintf("urlsign: %s failed for /%s/%s: %v", e.Op, e.Bucket, e.Object, e.Err)
}

func (e *SignError) Unwrap() error {
	return e.Err
}

// IsTerminal reports whether err is one of the package's terminal errors.
// Terminal errors are caller-caused or configuration-caused and never worth
// retrying with the same inputs.
func IsTerminal(err error) bool {
	return errors.Is(err, ErrSignedURLUnavailable) ||
		errors.Is(err, ErrInvalidSigningKey) ||
		errors.Is(err, ErrPolicyNotMapping)
}
