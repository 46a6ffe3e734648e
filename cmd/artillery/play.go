package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/artillery/internal/games/artillery"
	"github.com/vovakirdan/artillery/internal/platform/tui"
	"github.com/vovakirdan/artillery/internal/registry"
)

var flagFirstTo int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a hot-seat duel",
	Long: `Start a duel between two players on the same keyboard.

Controls:
  Up/Down, W/S     - Raise/lower the angle
  Left/Right, A/D  - Decrease/increase the velocity
  Space/F          - Fire
  Enter/I          - Type an exact angle and velocity
  P/Esc            - Pause
  R                - Restart (after a duel is won)
  Ctrl+S           - Save a screenshot
  ?                - Toggle full help
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Wind up to 4, larger cannons
  normal - Values from the config file
  hard   - Wind up to 15, smaller cannons
  fixed  - No wind at all

Examples:
  artillery play
  artillery play --first-to 3
  artillery play --difficulty hard --seed 42
  artillery play --config ./my-artillery.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagFirstTo, "first-to", -1, "Hits needed to win (0 = endless, default from config)")
}

func runPlay(_ *cobra.Command, _ []string) {
	if flagFirstTo >= 0 {
		artillery.SetWinScore(flagFirstTo)
	}

	game, err := registry.Create(artillery.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	runErr := tui.Run(game, store, runtimeConfig(), log.Default())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
