// Package auth implements the credential gate: a stateless check of a
// submitted secret against the server-held reference, plus optional
// session-token issuance for callers that want presign requests verified
// server-side.
package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/pixeldrop/pixeldrop/internal/common"
	"github.com/pixeldrop/pixeldrop/internal/server/config"
)

type Service struct {
	config *config.Config
}

func NewService(cfg *config.Config) *Service {
	return &Service{config: cfg}
}

// Authorize checks the candidate secret against the configured reference.
//
// Failure modes, matched with errors.Is:
//   - common.ErrNotConfigured: no reference secret is configured at all.
//     A deployment fault, distinct from a wrong password.
//   - common.ErrInvalidInput: empty candidate.
//   - common.ErrUnauthorized: candidate does not match.
//
// The check is stateless: nothing is recorded server-side, each call is
// independent, and there is no lockout or backoff. The comparison is exact
// and byte-for-byte (no trimming, case-sensitive), done in constant time.
// When AuthPasswordHash is set it takes precedence and the candidate is
// verified against the bcrypt hash instead of a plaintext reference.
func (s *Service) Authorize(candidate string) error {
	if s.config.AuthPassword == "" && s.config.AuthPasswordHash == "" {
		return fmt.Errorf("%w: AUTH_PASSWORD is not set", common.ErrNotConfigured)
	}

	if candidate == "" {
		return fmt.Errorf("%w: password is required", common.ErrInvalidInput)
	}

	if h := s.config.AuthPasswordHash; h != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(h), []byte(candidate)); err != nil {
			return common.ErrUnauthorized
		}
		return nil
	}

	if subtle.ConstantTimeCompare([]byte(candidate), []byte(s.config.AuthPassword)) != 1 {
		return common.ErrUnauthorized
	}
	return nil
}

// TokensEnabled reports whether the gate should issue session tokens and
// the presign endpoint should demand them.
func (s *Service) TokensEnabled() bool {
	return s.config.SessionTokenRequired
}

// IssueSessionToken returns a signed session token for an authorized
// caller. It fails with common.ErrNotConfigured when no signing secret is
// set, so enabling SESSION_TOKEN_REQUIRED without SESSION_SECRET is caught
// loudly.
func (s *Service) IssueSessionToken() (string, error) {
	if s.config.SessionSecret == "" {
		return "", fmt.Errorf("%w: SESSION_SECRET is not set", common.ErrNotConfigured)
	}
	return GenerateToken([]byte(s.config.SessionSecret), s.config.SessionTokenValidity)
}

// ValidateSessionToken checks a bearer token previously issued by
// IssueSessionToken.
func (s *Service) ValidateSessionToken(token string) error {
	if s.config.SessionSecret == "" {
		return fmt.Errorf("%w: SESSION_SECRET is not set", common.ErrNotConfigured)
	}
	return ValidateToken(token, []byte(s.config.SessionSecret))
}
