package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/budgetdash/budgetdash/internal/api"
	"github.com/budgetdash/budgetdash/internal/config"
	"github.com/budgetdash/budgetdash/internal/logging"
	"github.com/budgetdash/budgetdash/internal/session"
	"github.com/budgetdash/budgetdash/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, closeLog, err := logging.Open("budgetdash")
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer closeLog()

	client := api.New(cfg.API.BaseURL, cfg.Timeout(), logger.With("component", "api"))

	store, err := session.NewStore()
	if err != nil {
		log.Fatalf("token store: %v", err)
	}
	sess, err := session.NewManager(client, store, logger.With("component", "session"))
	if err != nil {
		log.Fatalf("session: %v", err)
	}

	app := tui.New(ctx, cfg, client, sess, logger.With("component", "tui"))
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "budgetdash: %v\n", err)
		os.Exit(1)
	}
}
