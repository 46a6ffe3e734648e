package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/artillery/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows the games registered in this build.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	writeGameList(os.Stdout, registry.List())
}

// writeGameList prints one line per game plus its tagline and duel lengths.
func writeGameList(w io.Writer, games []registry.Info) {
	if len(games) == 0 {
		fmt.Fprintln(w, "No games available.")
		return
	}

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Fprintf(w, "  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Fprintf(w, "  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Fprintf(w, "  %-*s  %s\n", maxIDLen, g.ID, g.Title)
		if g.Tagline != "" {
			fmt.Fprintf(w, "  %-*s  %s\n", maxIDLen, "", g.Tagline)
		}
		if len(g.Lengths) > 0 {
			labels := make([]string, len(g.Lengths))
			for i, n := range g.Lengths {
				labels[i] = registry.LengthLabel(n)
			}
			fmt.Fprintf(w, "  %-*s  duels: %s\n", maxIDLen, "", strings.Join(labels, ", "))
		}
	}
}
