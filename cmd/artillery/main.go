// artillery is a two-player artillery duel for the terminal.
//
// Usage:
//
//	artillery play              - Play a hot-seat duel
//	artillery menu              - Start menu to pick the duel length
//	artillery serve             - Start SSH server for remote play
//	artillery history           - Show past duels and standings
//	artillery simulate          - Fire one shot without the TUI
//	artillery list              - List available games
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 50)
//	--seed <value>      - Set wind RNG seed for reproducible duels
//	--db <path>         - Set database path (default: ~/.artillery/history.db)
//	--config <path>     - Use a custom artillery.yaml
//	--difficulty <name> - Difficulty preset: easy, normal, hard, fixed
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/artillery/internal/core"
	"github.com/vovakirdan/artillery/internal/games/artillery"
	"github.com/vovakirdan/artillery/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagVerbose    bool
)

// logFile is the open --log-file, closed when the command finishes.
var logFile *os.File

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "artillery",
	Short: "Artillery - a hot-seat cannon duel in your terminal",
	Long: `Artillery is a turn-based duel for two players sharing one keyboard.
Each player aims a cannon by angle and velocity and fires across the
field. The wind changes every round; the first hit scores.

Available commands:
  play      - Play a duel directly
  menu      - Pick the duel length from a menu
  serve     - Start SSH server for remote play
  history   - View past duels and standings
  simulate  - Fire a single shot and print where it lands
  list      - Show registered games

Examples:
  artillery play
  artillery play --first-to 5 --difficulty hard
  artillery menu
  artillery serve --ssh :2222
  artillery simulate --angle 45 --velocity 42`,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 50, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Wind RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.artillery/history.db", "Path to duel history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom artillery config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(listCmd)
}

// setup applies the global flags before any subcommand runs.
func setup(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(flagLogFile, flagVerbose)
	if err != nil {
		return err
	}
	log.SetDefault(logger)

	artillery.SetConfigPath(flagConfig)
	artillery.SetDifficultyPreset(flagDifficulty)
	return nil
}

// newLogger writes to path, or discards everything when path is empty:
// the alt screen owns the terminal while a duel runs.
func newLogger(path string, verbose bool) (*log.Logger, error) {
	var w io.Writer = io.Discard
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		w = f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "artillery",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, nil
}

// runtimeConfig builds the runtime config from the terminal size and the
// global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the history database. Duels still work without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		log.Warn("history disabled", "db", flagDBPath, "err", err)
		return nil
	}
	return store
}
