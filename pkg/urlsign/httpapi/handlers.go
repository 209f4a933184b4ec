// Package httpapi exposes the signing pipeline over HTTP for services that
// issue signed URLs to their own clients. Handlers are chi routes returning
// JSON; the signing itself stays a local computation.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tendant/gcs-urlsign/pkg/urlsign"
)

// SignURLRequest is the request body for issuing a signed URL
type SignURLRequest struct {
	Bucket      string            `json:"bucket"`
	Object      string            `json:"object"`
	Method      string            `json:"method,omitempty"`
	ContentMD5  string            `json:"content_md5,omitempty"`
	ContentType string            `json:"content_type,omitempty"`
	ExpiresIn   int64             `json:"expires_in,omitempty"` // seconds
	Headers     map[string]string `json:"headers,omitempty"`
	QueryParams []QueryParam      `json:"query_params,omitempty"`
}

// QueryParam mirrors urlsign.QueryParam for JSON binding
type QueryParam struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SignURLResponse is the response body for a signed URL
type SignURLResponse struct {
	URL     string `json:"url"`
	Expires int64  `json:"expires"`
}

// SignPolicyRequest is the request body for issuing POST policy fields
type SignPolicyRequest struct {
	Bucket    string         `json:"bucket"`
	Object    string         `json:"object"`
	ExpiresIn int64          `json:"expires_in,omitempty"`
	Policy    map[string]any `json:"policy"`
}

// SignPolicyResponse carries the upload target and the form fields to embed
type SignPolicyResponse struct {
	TargetURL string            `json:"target_url"`
	Fields    map[string]string `json:"fields"`
}

// ErrorResponse is the JSON error body
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Handler serves the signing endpoints
type Handler struct {
	signer *urlsign.Signer
}

// NewHandler creates a handler around a configured signer
func NewHandler(signer *urlsign.Signer) *Handler {
	return &Handler{signer: signer}
}

// Routes returns the routes for signing
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID)

	r.Post("/sign/url", h.SignURL)
	r.Post("/sign/policy", h.SignPolicy)

	return r
}

// SignURL issues a signed URL for the requested object
func (h *Handler) SignURL(w http.ResponseWriter, r *http.Request) {
	var req SignURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if req.Bucket == "" || req.Object == "" {
		writeError(w, r, http.StatusBadRequest, "missing_resource", "bucket and object are required")
		return
	}

	expiresIn := time.Duration(req.ExpiresIn) * time.Second
	if expiresIn == 0 {
		expiresIn = urlsign.DefaultExpiry
	}
	opts := urlsign.SignOptions{
		Method:      req.Method,
		ContentMD5:  req.ContentMD5,
		ContentType: req.ContentType,
		Expires:     time.Now().Add(expiresIn),
		Headers:     req.Headers,
	}
	for _, p := range req.QueryParams {
		opts.QueryParams = append(opts.QueryParams, urlsign.QueryParam{Name: p.Name, Value: p.Value})
	}

	artifact, err := h.signer.SignedURL(urlsign.ResourceLocator{Bucket: req.Bucket, Object: req.Object}, opts)
	if err != nil {
		slog.Error("Failed to sign URL", "bucket", req.Bucket, "object", req.Object, "error", err)
		writeSignError(w, r, err)
		return
	}

	slog.Info("Signed URL issued", "bucket", req.Bucket, "object", req.Object, "request_id", GetRequestID(r.Context()))
	render.JSON(w, r, SignURLResponse{URL: artifact.URL, Expires: opts.Expires.Unix()})
}

// SignPolicy issues POST policy form fields for the requested object
func (h *Handler) SignPolicy(w http.ResponseWriter, r *http.Request) {
	var req SignPolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if req.Bucket == "" || req.Object == "" {
		writeError(w, r, http.StatusBadRequest, "missing_resource", "bucket and object are required")
		return
	}

	var policy any
	if req.Policy != nil {
		policy = req.Policy
	}

	artifact, err := h.signer.PostPolicy(
		urlsign.ResourceLocator{Bucket: req.Bucket, Object: req.Object},
		urlsign.SignOptions{
			ExpiresIn: time.Duration(req.ExpiresIn) * time.Second,
			Policy:    policy,
		},
	)
	if err != nil {
		slog.Error("Failed to sign policy", "bucket", req.Bucket, "object", req.Object, "error", err)
		writeSignError(w, r, err)
		return
	}

	slog.Info("POST policy issued", "bucket", req.Bucket, "object", req.Object, "request_id", GetRequestID(r.Context()))
	render.JSON(w, r, SignPolicyResponse{
		TargetURL: artifact.TargetURL,
		Fields:    artifact.PostFields.FormFields(),
	})
}

// writeSignError maps the signing error taxonomy onto HTTP statuses:
// missing credentials 503, malformed policy 400, bad key material 422.
func writeSignError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, urlsign.ErrSignedURLUnavailable):
		writeError(w, r, http.StatusServiceUnavailable, "signed_url_unavailable", err.Error())
	case errors.Is(err, urlsign.ErrPolicyNotMapping):
		writeError(w, r, http.StatusBadRequest, "invalid_policy", err.Error())
	case errors.Is(err, urlsign.ErrInvalidSigningKey):
		writeError(w, r, http.StatusUnprocessableEntity, "invalid_signing_key", err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "sign_failed", err.Error())
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Code: code, Message: message})
}
