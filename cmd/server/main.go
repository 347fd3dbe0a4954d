package main

import (
	"context"

	"github.com/pixeldrop/pixeldrop/internal/server"
	"github.com/pixeldrop/pixeldrop/internal/server/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app := server.NewApp(cfg)
	app.Run(ctx)
}
