package urlsign

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// encryptionKeyHeaderPrefix is matched as a case-insensitive prefix, not an
// exact name: x-goog-encryption-key-sha256 and friends are excluded too.
const encryptionKeyHeaderPrefix = "x-goog-encryption-key"

// canonicalResourcePath returns "/bucket/object" with every path segment
// percent-escaped under URL-path rules (space becomes %20, never '+').
// Slashes inside the object name stay as segment separators here; the final
// URL escapes the object name differently, see escapeObjectName.
func canonicalResourcePath(loc ResourceLocator) string {
	segments := strings.Split(loc.Object, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "/" + url.PathEscape(loc.Bucket) + "/" + strings.Join(segments, "/")
}

// canonicalizeHeaders renders extension headers into the deterministic block
// the verifier recomputes: names lower-cased, whitespace runs inside values
// collapsed to one space, one "name:value\n" line per header, lines sorted
// lexicographically. Headers whose lower-cased name starts with the
// encryption-key prefix are dropped entirely. Returns "" for no headers.
func canonicalizeHeaders(headers map[string]string) string {
	if len(headers) == 0 {
		return ""
	}

	lines := make([]string, 0, len(headers))
	for name, value := range headers {
		lname := strings.ToLower(strings.TrimSpace(name))
		if strings.HasPrefix(lname, encryptionKeyHeaderPrefix) {
			continue
		}
		lines = append(lines, lname+":"+collapseWhitespace(value))
	}
	sort.Strings(lines)

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// collapseWhitespace trims the value and squeezes every internal run of
// whitespace down to a single space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// signableString builds the exact byte sequence to sign for a V2 signed
// URL. Field order is fixed by the verification contract; empty scalars
// serialize as empty strings so field positions never shift.
func signableString(opts SignOptions, loc ResourceLocator) string {
	return strings.Join([]string{
		opts.Method,
		opts.ContentMD5,
		opts.ContentType,
		strconv.FormatInt(opts.Expires.Unix(), 10),
		canonicalizeHeaders(opts.Headers) + canonicalResourcePath(loc),
	}, "\n")
}

// escapeObjectName escapes an object name for the path of the final URL.
// Unlike canonicalResourcePath this escapes slashes too (%2F), matching the
// form the storage service serves signed requests under.
func escapeObjectName(name string) string {
	return strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
}
