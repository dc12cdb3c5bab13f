package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"visitor-cli/internal/dashboard"
	"visitor-cli/internal/export"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show visitor counts, purposes and recent check-ins",
	Run: func(cmd *cobra.Command, args []string) {
		api := requireLogin()

		ctx, cancel := commandContext()
		defer cancel()

		sum, err := dashboard.Load(ctx, api, time.Now())
		if err != nil {
			fail("loading dashboard", err)
		}

		if jsonOutput {
			printJSON(sum)
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintf(w, "Total visitors:\t%d\n", sum.Stats.Total)
		fmt.Fprintf(w, "Today:\t%d\n", sum.Stats.Today)
		fmt.Fprintf(w, "This week:\t%d\n", sum.Stats.ThisWeek)
		fmt.Fprintf(w, "This month:\t%d\n", sum.Stats.ThisMonth)
		w.Flush()

		fmt.Println("\nBy purpose:")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		for _, p := range sum.Purposes {
			fmt.Fprintf(w, "  %s\t%d\n", p.Purpose, p.Count)
		}
		w.Flush()

		fmt.Println("\nRecent check-ins:")
		if len(sum.Recent) == 0 {
			fmt.Println("  No visitors yet.")
			return
		}
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		for _, v := range sum.Recent {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", v.Name, v.Purpose, export.CheckinDisplay(v))
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
