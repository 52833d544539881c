package commands

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/farmhand-tools/modyard/internal/cli/config"
	"github.com/farmhand-tools/modyard/internal/host"
	"github.com/farmhand-tools/modyard/internal/ui"
)

// UIOptions holds options for the ui command.
type UIOptions struct {
	Port      int
	NoBrowser bool
	Watch     bool
}

// NewUICommand creates the ui command.
func NewUICommand() *cobra.Command {
	opts := &UIOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Start the modyard window server",
		Long: `Start a local web server hosting the companion windows.

The server provides:
- Savegame checker with badge filtering
- Per-collection notes editor
- File copy confirmation dialog

Snapshot changes on disk are pushed to the open windows.`,
		Example: `  # Start on default port
  modyard ui

  # Start on custom port
  modyard ui --port 3000

  # Start without auto-opening browser
  modyard ui --no-browser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Watch the snapshot file for changes")

	return cmd
}

func runUI(cmd *cobra.Command, opts *UIOptions) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	uiCfg := cfg.GetUIConfig()

	// CLI flags override config file
	port := uiCfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	autoOpen := uiCfg.AutoOpen
	if opts.NoBrowser {
		autoOpen = false
	}

	watch := uiCfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	snap, err := loadSnapshot(cfg)
	if err != nil {
		return err
	}

	h := host.New(host.Config{
		Logger:  logger,
		HomeDir: cfg.HomeDir,
	})
	h.SetSnapshot(snap)

	server := ui.NewServer(ui.Config{
		Host:          h,
		Port:          port,
		Watch:         watch,
		SnapshotPath:  cfg.SnapshotPath,
		SessionSecret: sessionSecret(),
		Logger:        logger,
	})

	if autoOpen {
		url := fmt.Sprintf("http://localhost:%d", port)
		go openBrowser(url)
	}

	fmt.Printf("Starting window server on http://localhost:%d\n", port)
	fmt.Println("Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	return server.Serve(ctx)
}

// sessionSecret returns the session secret from the environment, or a
// random one. A random secret invalidates sessions across restarts, which
// is fine for a local tool.
func sessionSecret() string {
	if secret := os.Getenv("MODYARD_SESSION_SECRET"); secret != "" {
		return secret
	}
	return uuid.NewString()
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
