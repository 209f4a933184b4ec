// Package urlsign produces time-limited, cryptographically authenticated
// access grants for objects in Google Cloud Storage: V2 signed URLs and
// signed POST policy documents for browser-based uploads.
//
// The package is a pure computation layer. It performs no network I/O, does
// not check that the target object exists, and holds no state between calls;
// a Signer is safe for concurrent use. The caller supplies a resource
// locator and signing options, and receives either a complete signed URL or
// the form fields for a POST policy upload.
//
// Signing Contract
//
// The canonical string, escaping rules, and field ordering follow the GCS
// V2 signing contract exactly; any deviation produces a URL the remote
// service rejects. Credentials can be given per call (GoogleAccessID plus
// PEM key material or a parsed Signable), or resolved from a fallback
// CredentialSource configured on the Signer, e.g. a service-account JSON
// file loaded by the credentials subpackage.
package urlsign
