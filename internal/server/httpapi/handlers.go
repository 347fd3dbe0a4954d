// Package httpapi exposes the credential gate and presign issuer over the
// JSON HTTP interface: two POST-only endpoints plus a health probe. File
// bytes never pass through here; clients PUT them straight to storage.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pixeldrop/pixeldrop/internal/common"
	"github.com/pixeldrop/pixeldrop/internal/logging"
	"github.com/pixeldrop/pixeldrop/internal/server/presign"
)

// Gate is the credential-gate surface the handlers need.
type Gate interface {
	Authorize(candidate string) error
	TokensEnabled() bool
	IssueSessionToken() (string, error)
	ValidateSessionToken(token string) error
}

// Issuer is the presign surface the handlers need.
type Issuer interface {
	Issue(ctx context.Context, req presign.Request) (*presign.Grant, error)
}

type Handlers struct {
	gate   Gate
	issuer Issuer
	logger logging.Logger
}

func NewHandlers(gate Gate, issuer Issuer, logger logging.Logger) *Handlers {
	return &Handlers{gate: gate, issuer: issuer, logger: logger}
}

type authRequest struct {
	Password string `json:"password"`
}

type authResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Error   string `json:"error,omitempty"`
}

type presignRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

type presignResponse struct {
	Success      bool   `json:"success"`
	PresignedURL string `json:"presignedUrl,omitempty"`
	PublicURL    string `json:"publicUrl,omitempty"`
	Key          string `json:"key,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Auth handles POST /api/auth: the credential check that unlocks the
// upload capability for the caller's session.
func (h *Handlers) Auth(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, authResponse{Error: "Invalid request body."})
		return
	}

	err := h.gate.Authorize(req.Password)
	switch {
	case err == nil:
		// authorized
	case errors.Is(err, common.ErrNotConfigured):
		h.logger.Error(r.Context(), "credential gate misconfigured", "err", err.Error())
		writeJSON(w, http.StatusInternalServerError, authResponse{
			Error: "Server configuration error. AUTH_PASSWORD environment variable is not set.",
		})
		return
	case errors.Is(err, common.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, authResponse{Error: "Password is required."})
		return
	case errors.Is(err, common.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, authResponse{Error: "Invalid password."})
		return
	default:
		h.logger.Error(r.Context(), "credential gate failed", "err", err.Error())
		writeJSON(w, http.StatusInternalServerError, authResponse{Error: "An internal server error occurred."})
		return
	}

	resp := authResponse{Success: true}
	if h.gate.TokensEnabled() {
		token, err := h.gate.IssueSessionToken()
		if err != nil {
			h.logger.Error(r.Context(), "session token issuance failed", "err", err.Error())
			writeJSON(w, http.StatusInternalServerError, authResponse{Error: "An internal server error occurred."})
			return
		}
		resp.Token = token
	}
	writeJSON(w, http.StatusOK, resp)
}

// Presign handles POST /api/presign: issues a signed upload URL and the
// matching public URL for one object.
func (h *Handlers) Presign(w http.ResponseWriter, r *http.Request) {
	var req presignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, presignResponse{Error: "Invalid request body."})
		return
	}

	if req.FileName == "" || req.ContentType == "" {
		writeJSON(w, http.StatusBadRequest, presignResponse{Error: "fileName and contentType are required."})
		return
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		writeJSON(w, http.StatusBadRequest, presignResponse{Error: "Only image files are allowed."})
		return
	}

	grant, err := h.issuer.Issue(r.Context(), presign.Request{
		FileName:    req.FileName,
		ContentType: req.ContentType,
	})
	switch {
	case err == nil:
	case errors.Is(err, common.ErrNotConfigured):
		h.logger.Error(r.Context(), "presign issuer misconfigured", "err", err.Error())
		writeJSON(w, http.StatusInternalServerError, presignResponse{Error: "Server configuration error (storage)."})
		return
	case errors.Is(err, common.ErrInvalidInput):
		// The issuer revalidates; reaching this means the handler checks
		// above and the issuer disagree, which is still a caller fault.
		writeJSON(w, http.StatusBadRequest, presignResponse{Error: "Only image files are allowed."})
		return
	case errors.Is(err, common.ErrSigning):
		h.logger.Error(r.Context(), "presign signing failed", "err", err.Error())
		writeJSON(w, http.StatusInternalServerError, presignResponse{
			Error: "Failed to generate presigned URL: " + strings.TrimPrefix(err.Error(), common.ErrSigning.Error()+": "),
		})
		return
	default:
		h.logger.Error(r.Context(), "presign failed", "err", err.Error())
		writeJSON(w, http.StatusInternalServerError, presignResponse{Error: "An internal server error occurred."})
		return
	}

	h.logger.Info(r.Context(), "presign issued", "key", grant.Key, "content_type", req.ContentType)

	writeJSON(w, http.StatusOK, presignResponse{
		Success:      true,
		PresignedURL: grant.UploadURL,
		PublicURL:    grant.PublicURL,
		Key:          grant.Key,
	})
}

// Health handles GET /health.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
