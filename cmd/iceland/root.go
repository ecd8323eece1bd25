package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "iceland",
		Short: "iceland - switch between life areas and track the time spent in each",
		Long: `iceland keeps one current area (work, math, learning, ...) with its own
notes, flashcards, links and browser profile.

Switching areas records the running session against the old area and starts
a new one. Sessions are appended to sessions.csv under ~/.iceland (or
$ICELAND_HOME) and summarized by stats and history.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	root.PersistentFlags().StringVar(&a.home, "home", "", "state directory (default ~/.iceland or $ICELAND_HOME)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newInitCmd(a),
		newListCmd(a),
		newSwitchCmd(a),
		newTUICmd(a),
		newStatusCmd(a),
		newStartCmd(a),
		newStopCmd(a),
		newStatsCmd(a),
		newHistoryCmd(a),
		newAddAreaCmd(a),
		newRemoveAreaCmd(a),
		newDestroyCmd(a),
		newNotesCmd(a),
		newFlashcardsCmd(a),
		newWatchCmd(a),
		newConfigCmd(a),
	)

	return root
}
