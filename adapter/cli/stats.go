package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

var (
	statsJSON    bool
	statsMetrics bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task statistics",
	Long: `Display task counts per status, overdue tasks and the completion rate.

Examples:
  taskdeck stats
  taskdeck stats --json`,
	Aliases: []string{"summary"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.GetStatsHandler == nil {
			return errors.New("application not initialized")
		}

		stats, err := app.GetStatsHandler.Handle(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to compute stats: %w", err)
		}

		out := cmd.OutOrStdout()
		if statsJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}

		fmt.Fprintln(out, "Task Stats")
		fmt.Fprintln(out, strings.Repeat("-", 40))
		fmt.Fprintf(out, "  Total:       %d\n", stats.Total)
		fmt.Fprintf(out, "  To Do:       %d\n", stats.ToDo)
		fmt.Fprintf(out, "  In Progress: %d\n", stats.InProgress)
		fmt.Fprintf(out, "  Done:        %d\n", stats.Done)
		fmt.Fprintf(out, "  Overdue:     %d\n", stats.Overdue)
		fmt.Fprintf(out, "  Completion:  %d%%\n", stats.CompletionRate)

		if statsMetrics && app.Metrics != nil {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Session Metrics")
			fmt.Fprintln(out, strings.Repeat("-", 40))

			counters := app.Metrics.Counters()
			for _, name := range sortedKeys(counters) {
				fmt.Fprintf(out, "  %s: %d\n", name, counters[name])
			}
			gauges := app.Metrics.Gauges()
			for _, name := range sortedKeys(gauges) {
				fmt.Fprintf(out, "  %s: %g\n", name, gauges[name])
			}
			histograms := app.Metrics.Histograms()
			for _, name := range sortedKeys(histograms) {
				h := histograms[name]
				fmt.Fprintf(out, "  %s: count=%d last=%g max=%g\n", name, h.Count, h.Last, h.Max)
			}
		}
		return nil
	},
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print stats as JSON")
	statsCmd.Flags().BoolVar(&statsMetrics, "metrics", false, "also print this session's counters, gauges and histograms")
	rootCmd.AddCommand(statsCmd)
}
