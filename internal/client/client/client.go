// Package client defines the API client the upload services talk through,
// plus its HTTP implementation. Keeping the interface narrow lets tests
// substitute a fake without a server.
package client

import (
	"context"

	"github.com/pixeldrop/pixeldrop/internal/client/models"
)

type Client interface {
	Close() error

	// Login submits the shared secret to the credential gate. On success
	// the client remembers any session token the server issued and
	// presents it on subsequent Presign calls.
	Login(ctx context.Context, password string) error

	// Presign asks the server for a signed upload URL for one file.
	Presign(ctx context.Context, fileName, contentType string) (*models.PresignGrant, error)

	// Ping probes server reachability via the health endpoint.
	Ping(ctx context.Context) error
}
