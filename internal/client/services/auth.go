// Package services holds the client-side coordinators: the session auth
// service that remembers the credential gate's verdict, and the upload
// service that drives batches of files through presign and transfer.
package services

import (
	"context"
	"sync"

	"github.com/pixeldrop/pixeldrop/internal/client/client"
)

// AuthService owns the session authorization state. The server is
// stateless with respect to it: once the gate says yes, the client alone
// remembers that for the rest of the session.
type AuthService interface {
	Login(ctx context.Context, password string) error
	Logout()
	IsAuthorized() bool
	LastError() string
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client

	mu         sync.Mutex
	authorized bool
	lastError  string
}

func NewAuthService(c client.Client) AuthService {
	return &authService{client: c}
}

func (s *authService) Login(ctx context.Context, password string) error {
	err := s.client.Login(ctx, password)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.authorized = false
		s.lastError = err.Error()
		return err
	}

	s.authorized = true
	s.lastError = ""
	return nil
}

func (s *authService) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authorized = false
	s.lastError = ""
}

func (s *authService) IsAuthorized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authorized
}

func (s *authService) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

func (s *authService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
