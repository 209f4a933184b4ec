package urlsign

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultHost is the public endpoint signed URLs point at unless the Signer
// is configured with another host, e.g. a test double.
const DefaultHost = "https://storage.googleapis.com"

// Signer issues signed URLs and POST policies. It holds only configuration
// (host and fallback credentials); every call is an independent single-pass
// pipeline, so a Signer is safe for concurrent use.
type Signer struct {
	host  string
	creds CredentialSource
	now   func() time.Time
}

// Option is a functional option for configuring a Signer
type Option func(*Signer)

// WithHost overrides the storage service endpoint embedded in signed URLs.
// A trailing slash is stripped.
func WithHost(host string) Option {
	return func(s *Signer) {
		s.host = strings.TrimSuffix(host, "/")
	}
}

// WithCredentialSource sets the fallback identity used when SignOptions
// carry no explicit GoogleAccessId or key.
func WithCredentialSource(src CredentialSource) Option {
	return func(s *Signer) {
		s.creds = src
	}
}

// New creates a Signer with the given options.
func New(opts ...Option) *Signer {
	s := &Signer{
		host: DefaultHost,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignedURL produces a signed URL authorizing opts.Method on the located
// object until opts.Expires. The URL carries GoogleAccessId, Expires and
// Signature in that order, followed by any caller-supplied query parameters
// in their given order.
func (s *Signer) SignedURL(loc ResourceLocator, opts SignOptions) (SignedArtifact, error) {
	opts = opts.resolve(s.now())

	identity, err := s.resolveIdentity(opts)
	if err != nil {
		return SignedArtifact{}, &SignError{Op: "sign url", Bucket: loc.Bucket, Object: loc.Object, Err: err}
	}

	signature, err := signToBase64(identity.Key, []byte(signableString(opts, loc)))
	if err != nil {
		return SignedArtifact{}, &SignError{Op: "sign url", Bucket: loc.Bucket, Object: loc.Object, Err: err}
	}

	var b strings.Builder
	b.WriteString(s.host)
	b.WriteByte('/')
	b.WriteString(url.PathEscape(loc.Bucket))
	b.WriteByte('/')
	b.WriteString(escapeObjectName(loc.Object))
	b.WriteString("?GoogleAccessId=")
	b.WriteString(url.QueryEscape(identity.GoogleAccessID))
	b.WriteString("&Expires=")
	b.WriteString(strconv.FormatInt(opts.Expires.Unix(), 10))
	b.WriteString("&Signature=")
	b.WriteString(url.QueryEscape(signature))
	for _, p := range opts.QueryParams {
		b.WriteByte('&')
		b.WriteString(url.QueryEscape(p.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}

	return SignedArtifact{Kind: ArtifactSignedURL, URL: b.String()}, nil
}

// PostPolicy produces the signed form fields for a direct browser upload of
// the located object under the conditions in opts.Policy. The policy JSON is
// base64-encoded and the signature covers the base64 text, not the raw JSON.
func (s *Signer) PostPolicy(loc ResourceLocator, opts SignOptions) (SignedArtifact, error) {
	opts = opts.resolve(s.now())

	policy, ok := opts.Policy.(map[string]any)
	if !ok || policy == nil {
		return SignedArtifact{}, &SignError{Op: "sign policy", Bucket: loc.Bucket, Object: loc.Object, Err: ErrPolicyNotMapping}
	}

	identity, err := s.resolveIdentity(opts)
	if err != nil {
		return SignedArtifact{}, &SignError{Op: "sign policy", Bucket: loc.Bucket, Object: loc.Object, Err: err}
	}

	// json.Marshal sorts map keys, so the serialization is stable for a
	// given policy document.
	policyJSON, err := json.Marshal(policy)
	if err != nil {
		return SignedArtifact{}, &SignError{Op: "sign policy", Bucket: loc.Bucket, Object: loc.Object, Err: err}
	}
	policyBase64 := base64.StdEncoding.EncodeToString(policyJSON)

	signature, err := signToBase64(identity.Key, []byte(policyBase64))
	if err != nil {
		return SignedArtifact{}, &SignError{Op: "sign policy", Bucket: loc.Bucket, Object: loc.Object, Err: err}
	}

	return SignedArtifact{
		Kind: ArtifactPostPolicy,
		PostFields: &PostObjectFields{
			Key:            loc.Object,
			GoogleAccessID: identity.GoogleAccessID,
			Policy:         policyBase64,
			Signature:      signature,
		},
		TargetURL: s.host + "/" + url.PathEscape(loc.Bucket),
	}, nil
}

// IssueURL implements URLIssuer on top of SignedURL.
func (s *Signer) IssueURL(_ context.Context, method string, loc ResourceLocator, expiresIn time.Duration) (string, error) {
	artifact, err := s.SignedURL(loc, SignOptions{Method: method, ExpiresIn: expiresIn})
	if err != nil {
		return "", err
	}
	return artifact.URL, nil
}

// resolveIdentity resolves the issuer and key, explicit options first and
// the credential source last. Missing issuer or missing key material is
// ErrSignedURLUnavailable, raised before any key parsing or signing.
func (s *Signer) resolveIdentity(opts SignOptions) (Identity, error) {
	issuer := opts.issuer()
	if issuer == "" && s.creds != nil {
		issuer = s.creds.GoogleAccessID()
	}

	keyMaterial := opts.PrivateKey
	if opts.SigningKey == nil && len(keyMaterial) == 0 && s.creds != nil {
		keyMaterial = s.creds.SigningKey()
	}

	if issuer == "" || (opts.SigningKey == nil && len(keyMaterial) == 0) {
		return Identity{}, ErrSignedURLUnavailable
	}

	key := opts.SigningKey
	if key == nil {
		parsed, err := ParseSigningKey(keyMaterial)
		if err != nil {
			return Identity{}, err
		}
		key = parsed
	}

	return Identity{GoogleAccessID: issuer, Key: key}, nil
}

// signToBase64 signs message and returns the signature as standard base64
// with no line breaks.
func signToBase64(key Signable, message []byte) (string, error) {
	sig, err := key.SignSHA256(message)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}
