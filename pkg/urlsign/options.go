package urlsign

import "time"

// DefaultExpiry is how long an artifact stays valid when the caller sets
// neither Expires nor ExpiresIn.
const DefaultExpiry = 300 * time.Second

// SignOptions configures one signing call. The zero value signs a GET URL
// valid for DefaultExpiry using the Signer's credential source.
type SignOptions struct {
	// Method is the HTTP method the artifact authorizes. Defaults to GET.
	Method string

	// ContentMD5 and ContentType, when set, bind the request body the
	// verifier will accept. Empty values still occupy their position in the
	// canonical string.
	ContentMD5  string
	ContentType string

	// Expires is the absolute expiration instant. When zero it is resolved
	// to now + ExpiresIn. Once absolute it is never recomputed, so resolving
	// an already-resolved options value is a no-op.
	Expires time.Time

	// ExpiresIn is the validity window used to derive Expires. Zero means
	// DefaultExpiry.
	ExpiresIn time.Duration

	// Headers are extension headers the verifier must see on the request.
	// Names with the x-goog-encryption-key prefix are excluded from the
	// canonical string; encryption keys are never encoded into it.
	Headers map[string]string

	// GoogleAccessID names the issuer explicitly. ClientEmail is honored as
	// a second explicit form for callers passing service-account fields
	// through. When both are empty the Signer's credential source is asked.
	GoogleAccessID string
	ClientEmail    string

	// SigningKey is a pre-parsed signing handle. PrivateKey is raw PEM key
	// material parsed on demand. SigningKey wins over PrivateKey, and both
	// win over the credential source.
	SigningKey Signable
	PrivateKey []byte

	// QueryParams are appended to a signed URL after the fixed parameters,
	// in the given order.
	QueryParams []QueryParam

	// Policy is the POST policy document for PostPolicy calls. It must be a
	// plain key-value mapping (map[string]any).
	Policy any
}

// resolve returns a copy with defaults applied: method GET and an absolute
// expiration. The caller's value is never mutated. Resolving twice yields
// the same record since an absolute Expires is kept as-is.
func (o SignOptions) resolve(now time.Time) SignOptions {
	if o.Method == "" {
		o.Method = "GET"
	}
	if o.Expires.IsZero() {
		d := o.ExpiresIn
		if d == 0 {
			d = DefaultExpiry
		}
		o.Expires = now.Add(d)
	}
	return o
}

// issuer returns the explicit issuer identity, preferring GoogleAccessID.
func (o SignOptions) issuer() string {
	if o.GoogleAccessID != "" {
		return o.GoogleAccessID
	}
	return o.ClientEmail
}
