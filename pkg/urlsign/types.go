package urlsign

import (
	"context"
	"time"
)

// ResourceLocator identifies one object in one bucket. It is a value type
// and is never mutated after construction.
type ResourceLocator struct {
	Bucket string
	Object string
}

// QueryParam is one caller-supplied query parameter appended to a signed
// URL. Parameters are carried as a slice rather than a map so the order
// given by the caller is the order they appear in the URL.
type QueryParam struct {
	Name  string
	Value string
}

// ArtifactKind selects which case of a SignedArtifact is populated.
type ArtifactKind string

// Artifact kind constants (typed).
const (
	ArtifactSignedURL  ArtifactKind = "signed_url"
	ArtifactPostPolicy ArtifactKind = "post_policy"
)

// SignedArtifact is the output of a signing call: either a complete signed
// URL or the form fields for a POST policy upload, never both. Kind says
// which case is set.
type SignedArtifact struct {
	Kind ArtifactKind

	// URL is set when Kind is ArtifactSignedURL.
	URL string

	// PostFields and TargetURL are set when Kind is ArtifactPostPolicy.
	// TargetURL is the upload endpoint the form must POST to; rendering the
	// multipart form itself is the caller's concern.
	PostFields *PostObjectFields
	TargetURL  string
}

// PostObjectFields are the hidden form fields for a direct browser-to-GCS
// upload authorized by a signed POST policy.
type PostObjectFields struct {
	Key            string
	GoogleAccessID string
	Policy         string
	Signature      string
}

// FormFields renders the fields under their wire names, ready to be emitted
// as hidden inputs in an upload form.
func (f *PostObjectFields) FormFields() map[string]string {
	return map[string]string{
		"key":            f.Key,
		"GoogleAccessId": f.GoogleAccessID,
		"policy":         f.Policy,
		"signature":      f.Signature,
	}
}

// Identity is a fully resolved signing identity: the GoogleAccessId embedded
// in the output so the verifier knows which public key to check against, and
// the key that produces the signature.
type Identity struct {
	GoogleAccessID string
	Key            Signable
}

// CredentialSource supplies a fallback identity when the caller does not
// pass one explicitly in SignOptions. The credentials subpackage provides
// implementations backed by service-account JSON.
type CredentialSource interface {
	// GoogleAccessID returns the issuer identity, typically a service
	// account email. Empty means unavailable.
	GoogleAccessID() string

	// SigningKey returns PEM-encoded private key material. Nil or empty
	// means unavailable.
	SigningKey() []byte
}

// Signable is the capability required to sign a canonical string. It wraps
// either a pre-parsed private key or key material parsed by ParseSigningKey,
// so callers never branch on what form the key arrived in.
//
// Implementations must be safe for concurrent use; a parsed RSA key is
// read-only during signing.
type Signable interface {
	// SignSHA256 signs message using SHA-256 with RSA PKCS#1 v1.5 and
	// returns the raw signature bytes.
	SignSHA256(message []byte) ([]byte, error)
}

// URLIssuer is the narrow capability shared by the native Signer and
// SDK-delegated presigners such as the s3presign subpackage: issue a
// time-limited URL authorizing method on the located object.
type URLIssuer interface {
	IssueURL(ctx context.Context, method string, loc ResourceLocator, expiresIn time.Duration) (string, error)
}
