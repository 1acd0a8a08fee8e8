// campuslink is a terminal rendition of a campus community app: a social
// feed, a secondhand marketplace, a message center and a profile, all backed
// by in-memory seed data. There is no server; latency and replies are
// simulated.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"campuslink/cmd/campuslink/app"
	"campuslink/internal/config"
	"campuslink/internal/logging"
	"campuslink/internal/seed"
)

var (
	// Global flags
	configPath string
	seedPath   string
	watchSeed  bool
	themeName  string
	verbose    bool

	// Logger for non-interactive commands; the TUI logs through the
	// category file logger instead.
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "campuslink",
	Short: "campuslink - 校友圈 campus community in your terminal",
	Long: `campuslink renders a campus community app in the terminal: a social
feed with categories and search, a secondhand marketplace, a message center
with simulated replies and a profile screen.

All data is in-memory seed data. Point --seed at a YAML file to bring your
own, and add --watch to hot-reload it on save.

Run without arguments to start the interactive shell.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive shell has its own logging; keep its terminal clean.
		if cmd.Use == "campuslink" && cmd.CalledAs() == "campuslink" {
			return nil
		}
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell()
	},
}

// seedCmd dumps the embedded seed data as a YAML starting point.
var seedCmd = &cobra.Command{
	Use:   "seed [file]",
	Short: "Write the embedded seed data to a YAML file",
	Long: `Writes the built-in mock data (user, posts, threads, notifications,
schools) to a YAML file. Edit it and start the shell with --seed to use it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if err := seed.Save(path, seed.Default()); err != nil {
			return err
		}
		logger.Info("seed data written", zap.String("path", path))
		fmt.Printf("seed data written to %s\n", path)
		return nil
	},
}

// configCmd writes the default configuration file.
var configCmd = &cobra.Command{
	Use:   "config [file]",
	Short: "Write the default configuration to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		cfg := config.DefaultConfig()
		if err := cfg.Save(path); err != nil {
			return err
		}
		logger.Info("config written", zap.String("path", path))
		fmt.Printf("default config written to %s\n", path)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.DefaultConfig()
		fmt.Printf("%s %s\n", cfg.Name, cfg.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (YAML)")
	rootCmd.Flags().StringVar(&seedPath, "seed", "", "Seed data file (YAML)")
	rootCmd.Flags().BoolVar(&watchSeed, "watch", false, "Hot-reload the seed file on change")
	rootCmd.Flags().StringVar(&themeName, "theme", "", "Color theme: light, dark, auto")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// runShell loads config and seed data, then hands control to Bubble Tea.
func runShell() error {
	// .env populates the environment before config reads its overrides.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if seedPath != "" {
		cfg.Seed.Path = seedPath
	}
	if watchSeed {
		cfg.Seed.Watch = true
	}
	if themeName != "" {
		cfg.Theme = themeName
	}

	if err := logging.Initialize(cfg.StateDir, logging.Options{
		Enabled:    cfg.Logging.Enabled,
		Level:      cfg.Logging.Level,
		Categories: cfg.Logging.Categories,
	}); err != nil {
		return fmt.Errorf("logging init: %w", err)
	}
	defer logging.CloseAll()
	logging.Boot("campuslink %s starting", cfg.Version)

	data, err := seed.Load(cfg.Seed.Path)
	if err != nil {
		return err
	}

	var watcher *seed.Watcher
	if cfg.Seed.Watch && cfg.Seed.Path != "" {
		watcher, err = seed.Watch(cfg.Seed.Path)
		if err != nil {
			logging.SeedWarn("seed watch disabled: %v", err)
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	p := tea.NewProgram(app.New(cfg, data, watcher), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logging.BootError("shell exited with error: %v", err)
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
