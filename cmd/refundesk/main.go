package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/refundesk/refundesk/internal/config"
	"github.com/refundesk/refundesk/internal/session"
	"github.com/refundesk/refundesk/internal/tui"
	"github.com/refundesk/refundesk/pkg/api"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "refundesk",
	Short: "Terminal client for the Refundesk back office",
	Long: `Refundesk is a terminal client for the expense-reimbursement back
office: sign in, manage clients and members, request and review refunds,
and export status reports as CSV.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("refundesk " + version)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store := session.NewStore(session.NewFileStorage(cfg.StateDir), nil)
		store.Load()
		if !store.IsAuthenticated() {
			fmt.Println("no active session")
			return nil
		}
		store.Logout()
		fmt.Println("session cleared")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the configured API and session state",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store := session.NewStore(session.NewFileStorage(cfg.StateDir), nil)
		store.Load()

		fmt.Println("api:   " + cfg.APIURL)
		fmt.Println("state: " + cfg.StateDir)
		if u := store.User(); store.IsAuthenticated() && u != nil {
			fmt.Printf("user:  %s <%s>\n", u.Name, u.Email)
		} else if store.IsAuthenticated() {
			fmt.Println("user:  signed in")
		} else {
			fmt.Println("user:  signed out")
		}
		return nil
	},
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return config.Load(path)
}

// newLogger writes structured logs to the configured file. The TUI owns
// the terminal, so nothing may log to stderr while it runs.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o700); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{cfg.LogFile}
	zc.ErrorOutputPaths = []string{cfg.LogFile}
	if cfg.Debug {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}

func runTUI() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	store := session.NewStore(session.NewFileStorage(cfg.StateDir), logger)
	store.Load()

	client := api.New(cfg.APIURL)
	logger.Info("starting",
		zap.String("version", version),
		zap.String("api_url", cfg.APIURL),
		zap.Bool("authenticated", store.IsAuthenticated()),
	)

	app := tui.NewApp(client, store, cfg.StateDir, version)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("tui exited", zap.Error(err))
		return err
	}
	return nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.refundesk/config.yaml)")
	rootCmd.AddCommand(versionCmd, logoutCmd, statusCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
