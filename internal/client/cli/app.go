package cli

import (
	"bufio"
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/pixeldrop/pixeldrop/internal/client/client"
	"github.com/pixeldrop/pixeldrop/internal/client/config"
	"github.com/pixeldrop/pixeldrop/internal/client/services"
	"github.com/pixeldrop/pixeldrop/internal/logging"
)

// App is the interactive uploader client. It holds the two services the
// REPL commands dispatch to and the reader used for interactive prompts.
type App struct {
	config        *config.Config
	authService   services.AuthService
	uploadService services.UploadService
	reader        *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	apiClient := client.NewHTTPClient(c.ServerBaseURL, &http.Client{Timeout: c.RequestTimeout})

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	as := services.NewAuthService(apiClient)
	us := services.NewUploadService(apiClient, &http.Client{Timeout: c.TransferTimeout}, logger)

	return &App{
		config:        c,
		authService:   as,
		uploadService: us,
		reader:        bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.authService.IsAuthorized()
}

func (a *App) getStatus() string {
	if a.isLoggedIn() {
		return "(authorized)"
	}
	return ""
}

// Run starts the REPL on stdin and blocks until the user exits or the
// context is cancelled.
func (a *App) Run(ctx context.Context) {
	printlnFn("pixeldrop CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
