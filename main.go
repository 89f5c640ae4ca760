package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/raaga-player/raaga/internal/app"
	"github.com/raaga-player/raaga/internal/audio"
	"github.com/raaga-player/raaga/internal/catalog"
	"github.com/raaga-player/raaga/internal/config"
	"github.com/raaga-player/raaga/internal/icons"
	"github.com/raaga-player/raaga/internal/library"
	"github.com/raaga-player/raaga/internal/logging"
	"github.com/raaga-player/raaga/internal/queue"
	"github.com/raaga-player/raaga/internal/resolve"
	"github.com/raaga-player/raaga/internal/state"
	"github.com/raaga-player/raaga/internal/transport"
	"github.com/raaga-player/raaga/internal/ui/styles"
)

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, logCloser, err := logging.OpenFile()
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logCloser.Close()

	states, err := state.Open()
	if err != nil {
		return fmt.Errorf("open state store: %w", err)
	}
	defer states.Close()

	store, err := library.NewStore(states, logger)
	if err != nil {
		return fmt.Errorf("load library: %w", err)
	}

	client := catalog.NewClient(cfg.API.BaseURL, cfg.API.FallbackURLs)
	resolver := resolve.New(client)

	engine := audio.NewBeepEngine()
	defer engine.Close()

	ctrl := transport.New(engine, queue.New(nil), resolver,
		transport.WithHistory(store),
		transport.WithQuality(cfg.Quality()),
	)
	defer ctrl.Close()

	// Restore the persisted playback preferences before the UI comes up.
	if ps, err := states.GetPlayer(); err == nil {
		restorePlayerPrefs(ctrl, ps)
		if ps.Theme != "" {
			cfg.Theme = ps.Theme
		}
	} else {
		logger.Warn("player preferences unavailable", "err", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ctrl.Run(ctx)

	icons.Init(cfg.Icons)
	styles.SetTheme(cfg.Theme)

	m := app.New(cfg, app.Deps{
		Controller: ctrl,
		Catalog:    client,
		Library:    store,
		States:     states,
		Logger:     logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// restorePlayerPrefs applies persisted playback preferences to a fresh
// controller. A muted session persists Volume as 0, and SetVolume(0) already
// leaves the controller muted; toggling on top of that would unmute it.
func restorePlayerPrefs(ctrl *transport.Controller, ps *state.PlayerState) {
	ctrl.SetVolume(ps.Volume)
	if ps.Muted && !ctrl.Muted() {
		ctrl.ToggleMute()
	}
	if ps.Shuffled {
		ctrl.ToggleShuffle()
	}
	ctrl.SetRepeatMode(queue.RepeatMode(ps.RepeatMode))
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "raaga: %v\n", err)
		os.Exit(1)
	}
}
