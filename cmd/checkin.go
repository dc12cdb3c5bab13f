package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"visitor-cli/internal/export"
	"visitor-cli/internal/validate"
	"visitor-cli/pkg/models"
)

var checkinForm validate.VisitorForm

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Register a visitor",
	Long: `Validates the visitor details and submits a check-in stamped with the
current time. Nothing is sent when a field is invalid.`,
	Example: `  visitor-cli checkin --name "Jane Doe" --email jane@example.com --phone "555-123-4567" --purpose "Business Meeting"`,
	Run: func(cmd *cobra.Command, args []string) {
		if errs := validate.Visitor(checkinForm); errs.Any() {
			fmt.Println("Please correct the following:")
			for _, field := range errs.Fields() {
				fmt.Printf("  %s: %s\n", field, errs[field])
			}
			os.Exit(1)
		}

		ctx, cancel := commandContext()
		defer cancel()

		form := checkinForm.Trimmed()
		v, err := newClient(nil).SubmitVisitor(ctx, models.VisitorPayload{
			Name:        form.Name,
			Email:       form.Email,
			Phone:       form.Phone,
			Host:        form.Host,
			Purpose:     form.Purpose,
			Message:     form.Message,
			CheckinTime: time.Now().Format(time.RFC3339),
		})
		if err != nil {
			fail("checking in", err)
		}

		if jsonOutput {
			printJSON(v)
			return
		}
		fmt.Printf("Thank you, %s! Checked in at %s.\n", v.Name, export.CheckinDisplay(v))
	},
}

func init() {
	rootCmd.AddCommand(checkinCmd)

	purposes := make([]string, len(models.Purposes))
	for i, p := range models.Purposes {
		purposes[i] = string(p)
	}

	checkinCmd.Flags().StringVar(&checkinForm.Name, "name", "", "Full name")
	checkinCmd.Flags().StringVar(&checkinForm.Email, "email", "", "Email address")
	checkinCmd.Flags().StringVar(&checkinForm.Phone, "phone", "", "Phone number (10-15 digits)")
	checkinCmd.Flags().StringVar(&checkinForm.Purpose, "purpose", "", "Purpose of visit ("+strings.Join(purposes, ", ")+")")
	checkinCmd.Flags().StringVar(&checkinForm.Host, "host", "", "Person being visited")
	checkinCmd.Flags().StringVar(&checkinForm.Message, "message", "", "Optional note")
}
