package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/artillery/internal/games/artillery"
	"github.com/vovakirdan/artillery/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick the duel length from a menu",
	Long: `Start in interactive menu mode.

Pick a duel length or the history screen. Quitting a duel returns to
the menu; quitting the menu exits.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q/Esc        - Quit

Examples:
  artillery menu
  artillery menu --difficulty easy
  artillery menu --db ./history.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	err := tui.RunSession(artillery.GameID, store, runtimeConfig(), log.Default())

	if store != nil {
		store.Close()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
