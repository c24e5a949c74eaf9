// Command tektune is a terminal client for the TekTune article API.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/tektune/internal/application/settings"
	"github.com/tesso57/tektune/internal/application/usecase"
	"github.com/tesso57/tektune/internal/domain/article"
	"github.com/tesso57/tektune/internal/infrastructure/api"
	"github.com/tesso57/tektune/internal/infrastructure/config"
	"github.com/tesso57/tektune/internal/infrastructure/markup"
	"github.com/tesso57/tektune/internal/presentation/tui"
)

// CLI holds the command line flags. Flags override the config file.
type CLI struct {
	Config   string `help:"Config file path (default ~/.config/tektune/config.yaml)" type:"path"`
	APIURL   string `name:"api-url" help:"Article API base URL"`
	Format   string `help:"Persisted content format (html or markdown)"`
	DebugLog string `name:"debug-log" help:"Write debug logs to this file" type:"path"`
}

// Validate rejects unknown content formats before the config is loaded.
func (c CLI) Validate() error {
	if c.Format == "" {
		return nil
	}
	_, err := article.ParseFormat(c.Format)
	return err
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("tektune"),
		kong.Description("Browse and edit TekTune articles from the terminal."),
		kong.UsageOnError(),
	)
	if err := run(cli); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cli CLI) error {
	store, err := config.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := cli.apply(store.Settings)

	logger, closeLog, err := newLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	client := api.New(cfg.API.BaseURL,
		api.WithTimeout(cfg.Timeout()),
		api.WithUserAgent(cfg.API.UserAgent),
		api.WithLogger(logger),
	)
	svc := usecase.NewArticleService(client, markup.NewCodec(cfg.Format()), cfg.ImageScopePlaceholder)
	logger.Info("starting", "api", client.BaseURL(), "format", cfg.Format(), "config", store.Path())

	model := tui.NewModel(cfg, svc, tui.Options{
		ResolveURL: client.ResolveURL,
		Logger:     logger,
	})
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

// apply layers the command line flags over the loaded settings.
func (c CLI) apply(cfg settings.Settings) settings.Settings {
	if c.APIURL != "" {
		cfg.API.BaseURL = config.NormalizeBaseURL(c.APIURL)
	}
	if c.Format != "" {
		cfg.ContentFormat = c.Format
	}
	if c.DebugLog != "" {
		cfg.LogFile = c.DebugLog
	}
	return cfg
}

func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := tea.LogToFile(path, "tektune")
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}
