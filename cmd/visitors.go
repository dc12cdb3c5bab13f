package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"visitor-cli/internal/config"
	"visitor-cli/internal/export"
	"visitor-cli/internal/viewer"
)

// Variables to hold flag values
var (
	listSearch   string
	listPurpose  string
	listFrom     string
	listTo       string
	listAsc      bool
	listPage     int
	listPageSize int

	visitorID    string
	deleteYes    bool
	exportOutput string
)

var visitorsCmd = &cobra.Command{
	Use:   "visitors",
	Short: "Review the visitor log",
	Long:  `List, inspect, delete or export visitor check-ins. Requires login.`,
}

// filterFromFlags builds the table selection shared by list and export.
func filterFromFlags() viewer.FilterState {
	f := viewer.NewFilterState().
		WithSearch(listSearch).
		WithPurpose(listPurpose).
		WithDateRange(listFrom, listTo)
	if listAsc {
		f = f.WithSort(viewer.SortAsc)
	}
	f.PageSize = listPageSize
	if f.PageSize <= 0 {
		f.PageSize = config.Load(viper.GetViper()).PageSize
	}
	return f.WithPage(listPage)
}

var visitorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List visitors, newest first",
	Example: `  visitor-cli visitors list --search jane --purpose Delivery --from 2024-01-01 --to 2024-01-31
  visitor-cli visitors list --asc --page 2`,
	Run: func(cmd *cobra.Command, args []string) {
		api := requireLogin()
		f := filterFromFlags()

		ctx, cancel := commandContext()
		defer cancel()

		records, err := api.ListAllVisitors(ctx, f.ListQuery())
		if err != nil {
			fail("fetching visitors", err)
		}
		page := viewer.View(records, f, time.Now())

		if jsonOutput {
			printJSON(page)
			return
		}

		if page.Total == 0 {
			fmt.Println("No visitors match the current filters.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tPURPOSE\tCHECK-IN")
		fmt.Fprintln(w, "--\t----\t-----\t-----\t-------\t--------")
		for _, v := range page.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				v.ID,
				v.Name,
				v.Email,
				v.Phone,
				v.Purpose,
				export.CheckinDisplay(v),
			)
		}
		w.Flush()

		fmt.Printf("\nPage %d of %d (%d visitors)\n", page.Page, page.Pages, page.Total)
	},
}

var visitorsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a single visitor",
	Run: func(cmd *cobra.Command, args []string) {
		api := requireLogin()

		ctx, cancel := commandContext()
		defer cancel()

		v, err := api.GetVisitor(ctx, visitorID)
		if err != nil {
			fail("fetching visitor", err)
		}

		if jsonOutput {
			printJSON(v)
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "ID:\t%s\n", v.ID)
		fmt.Fprintf(w, "Name:\t%s\n", v.Name)
		fmt.Fprintf(w, "Email:\t%s\n", v.Email)
		fmt.Fprintf(w, "Phone:\t%s\n", v.Phone)
		fmt.Fprintf(w, "Purpose:\t%s\n", v.Purpose)
		if v.Host != "" {
			fmt.Fprintf(w, "Host:\t%s\n", v.Host)
		}
		if v.Company != "" {
			fmt.Fprintf(w, "Company:\t%s\n", v.Company)
		}
		if v.Message != "" {
			fmt.Fprintf(w, "Message:\t%s\n", v.Message)
		}
		fmt.Fprintf(w, "Check-in:\t%s\n", export.CheckinDisplay(v))
		w.Flush()
	},
}

var visitorsDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Delete a visitor record",
	Example: `  visitor-cli visitors delete --id 42 --yes`,
	Run: func(cmd *cobra.Command, args []string) {
		api := requireLogin()

		if !deleteYes {
			answer := promptLine("Are you sure you want to delete this visitor? [y/N]: ")
			if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
				fmt.Println("Aborted.")
				return
			}
		}

		ctx, cancel := commandContext()
		defer cancel()

		if err := api.DeleteVisitor(ctx, visitorID); err != nil {
			fail("deleting visitor", err)
		}
		fmt.Printf("Visitor %s deleted.\n", visitorID)
	},
}

var visitorsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered visitor list as CSV",
	Long: `Writes every visitor matching the filters (all pages) to a CSV file,
visitors_<date>.csv by default. Use --output - for stdout.`,
	Run: func(cmd *cobra.Command, args []string) {
		api := requireLogin()
		f := filterFromFlags()

		ctx, cancel := commandContext()
		defer cancel()

		records, err := api.ListAllVisitors(ctx, f.ListQuery())
		if err != nil {
			fail("fetching visitors", err)
		}
		now := time.Now()
		rows := viewer.View(records, f, now).Filtered

		if exportOutput == "-" {
			if err := export.WriteCSV(os.Stdout, rows); err != nil {
				fmt.Printf("Error writing CSV: %v\n", err)
				os.Exit(1)
			}
			return
		}

		name := exportOutput
		if name == "" {
			name = export.FileName(now)
		}
		file, err := os.Create(name)
		if err != nil {
			fmt.Printf("Error creating file: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()

		if err := export.WriteCSV(file, rows); err != nil {
			fmt.Printf("Error writing CSV: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported %d visitors to %s\n", len(rows), name)
	},
}

func init() {
	rootCmd.AddCommand(visitorsCmd)
	visitorsCmd.AddCommand(visitorsListCmd)
	visitorsCmd.AddCommand(visitorsShowCmd)
	visitorsCmd.AddCommand(visitorsDeleteCmd)
	visitorsCmd.AddCommand(visitorsExportCmd)

	for _, c := range []*cobra.Command{visitorsListCmd, visitorsExportCmd} {
		c.Flags().StringVar(&listSearch, "search", "", "Case-insensitive match on name, email or phone")
		c.Flags().StringVar(&listPurpose, "purpose", viewer.AllPurposes, "Purpose of visit, or All")
		c.Flags().StringVar(&listFrom, "from", "", "Earliest check-in date (YYYY-MM-DD)")
		c.Flags().StringVar(&listTo, "to", "", "Latest check-in date (YYYY-MM-DD)")
		c.Flags().BoolVar(&listAsc, "asc", false, "Oldest first")
	}
	visitorsListCmd.Flags().IntVar(&listPage, "page", 1, "Page number")
	visitorsListCmd.Flags().IntVar(&listPageSize, "page-size", 0, "Rows per page (default from config)")

	visitorsExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default visitors_<date>.csv)")

	for _, c := range []*cobra.Command{visitorsShowCmd, visitorsDeleteCmd} {
		c.Flags().StringVar(&visitorID, "id", "", "Visitor ID")
		_ = c.MarkFlagRequired("id")
	}
	visitorsDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}
