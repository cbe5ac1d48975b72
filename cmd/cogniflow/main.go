package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dsharma/cogniflow/internal/api"
	"github.com/dsharma/cogniflow/internal/config"
	"github.com/dsharma/cogniflow/internal/metrics"
	"github.com/dsharma/cogniflow/internal/tui"
)

func main() {
	apiURL := flag.String("api", "", "backend base URL (default: saved setting, then COGNIFLOW_API_URL, then "+api.DefaultBaseURL+")")
	saveURL := flag.Bool("save-api", false, "persist the -api value for future runs")
	noAltScreen := flag.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	flag.Parse()

	config.LoadEnv()

	dir, err := config.Dir()
	if err != nil {
		fmt.Println("failed to prepare config directory:", err)
		os.Exit(1)
	}
	settingsPath := config.SettingsPath(dir)
	settings := config.LoadSettings(settingsPath)

	baseURL := config.ResolveBaseURL(*apiURL, settings)
	if *saveURL && *apiURL != "" {
		settings.BaseURL = *apiURL
		if err := config.SaveSettings(settingsPath, settings); err != nil {
			fmt.Println("failed to persist base URL:", err)
		}
	}

	store := metrics.NewStore(metrics.NewFilePersistence(config.MetricsPath(dir)))
	client := api.New(api.Config{
		BaseURL: baseURL,
		Token:   settings.Token,
		Usage:   store,
	})

	// A token that no longer authenticates gets cleared rather than poisoning
	// every later call.
	if settings.Token != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		_, err := client.CurrentUser(ctx)
		cancel()
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Status == 401 {
			settings.Token = ""
			client.SetToken("")
			if err := config.SaveSettings(settingsPath, settings); err != nil {
				fmt.Println("failed to clear stale token:", err)
			}
		}
	}

	opts := []tea.ProgramOption{}
	if !*noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Client:  client,
			Metrics: store,
		}),
		opts...,
	)

	if _, err := program.Run(); err != nil {
		fmt.Println("program error:", err)
		os.Exit(1)
	}
}
