package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "settings.yaml", "path to the settings file")
	server := flag.String("server", "", "websocket server URL (overrides settings)")
	username := flag.String("name", "", "username to join with (overrides settings)")
	debug := flag.Bool("debug", false, "verbose/debug logging")
	flag.Parse()

	settings := loadSettings(*configPath)
	if *server != "" {
		settings.ServerURL = *server
	}
	if *username != "" {
		settings.Username = *username
	}
	if *debug {
		settings.Debug = true
	}
	if settings.Username == "" {
		settings.Username = "guest-" + uuid.NewString()[:8]
	}

	setupLogging("worldwalk.log", settings.Debug)
	defer syncLogging()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := newGameClient(settings.ServerURL, settings.Username)
	go client.run(ctx)

	game := newGame(settings, client)
	game.ctx = ctx

	ebiten.SetWindowSize(settings.ScreenWidth*settings.Scale, settings.ScreenHeight*settings.Scale)
	ebiten.SetWindowTitle(fmt.Sprintf("worldwalk - %s", settings.Username))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(settings.Vsync)

	// RunGame blocks until the window closes or Update reports
	// ebiten.Termination after a signal cancels the context.
	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		logError("game loop: %v", err)
	}
	cancel()

	if err := settings.save(*configPath); err != nil {
		logError("save settings: %v", err)
	}
}
