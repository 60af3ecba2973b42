// Command foundloss-tui runs the interactive terminal front-end.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/foundloss/foundloss/internal/api"
	"github.com/foundloss/foundloss/internal/contact"
	"github.com/foundloss/foundloss/internal/directory"
	"github.com/foundloss/foundloss/internal/geo"
	"github.com/foundloss/foundloss/internal/lifecycle"
	"github.com/foundloss/foundloss/internal/session"
	"github.com/foundloss/foundloss/internal/tui"
)

func defaultAddr() string {
	if v := os.Getenv("FOUNDLOSS_ADDR"); v != "" {
		return v
	}
	return "http://localhost:8000"
}

// newLogger writes to a file when asked; stderr is owned by the
// renderer, so there is no console logging here.
func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

func main() {
	addr := flag.String("addr", defaultAddr(), "backend base URL")
	logPath := flag.String("log", "", "debug log file (disabled when empty)")
	lat := flag.Float64("lat", 0, "fixed latitude for location capture")
	lon := flag.Float64("lon", 0, "fixed longitude for location capture")
	flag.Parse()

	log, err := newLogger(*logPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	// Terminals have no position source of their own; coordinates come
	// from flags or not at all.
	var locator geo.Locator = geo.None
	if *lat != 0 || *lon != 0 {
		locator = geo.Fixed(*lat, *lon)
	}

	client := api.New(*addr, api.WithLogger(log))
	store := session.NewStore(client, session.WithLogger(log))

	m := tui.New(tui.Deps{
		Session:   store,
		Directory: directory.New(client, store, log),
		Lifecycle: lifecycle.NewController(client, store, log),
		API:       client,
		Opener:    contact.ExecOpener{},
		Locator:   locator,
		Log:       log,
	})

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
