package cli

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/pixeldrop/pixeldrop/internal/client/client"
	"github.com/pixeldrop/pixeldrop/internal/common"
)

// getPassword is an indirection used to facilitate testing.
// It points to the interactive input helper and can be swapped in tests.
var getPassword = GetPassword

// Login prompts the user for the gallery password and tries to authorize
// against the server. The password byte slice is wiped before returning.
//
// A wrong password and an unreachable server are reported to the user but
// do not abort the REPL; the returned error reflects the underlying cause.
func (a *App) Login(ctx context.Context) error {
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	err = a.authService.Login(ctx, string(password))
	if err != nil {
		switch {
		case errors.Is(err, client.ErrInvalidPassword):
			log.Printf("Login unsuccessful: %s", a.authService.LastError())
		case errors.Is(err, client.ErrUnavailable):
			log.Printf("Server unavailable: %s", err.Error())
		default:
			log.Printf("Login unsuccessful: %s", err.Error())
		}
		return err
	}

	log.Printf("Login successful")
	return nil
}

// Logout drops the local authorized state. The server keeps no session, so
// this is purely client-side.
func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout()
	log.Printf("Logged out")
	return nil
}
