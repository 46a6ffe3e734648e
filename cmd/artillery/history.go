package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/artillery/internal/platform/tui"
	"github.com/vovakirdan/artillery/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past duels and standings",
	Long: `Display recent duels with their scores, plus wins and points per color.

The interactive view lists duels in a table; press Enter on a duel to
see its shots. Use --plain for text output suitable for pipes.

Examples:
  artillery history
  artillery history --plain --limit 10
  artillery history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print plain tables instead of the interactive view")
	historyCmd.Flags().IntVar(&flagLimit, "limit", tui.DefaultHistoryLimit, "Number of duels to show")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded duels and shots")
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}

	switch {
	case flagClear:
		err = store.ClearHistory()
		if err == nil {
			fmt.Println("History cleared.")
		}
	case flagPlain:
		err = tui.WriteHistory(os.Stdout, store, flagLimit)
	default:
		cfg := runtimeConfig()
		err = tui.RunHistory(store, flagLimit, cfg.ScreenW, cfg.ScreenH)
	}

	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
