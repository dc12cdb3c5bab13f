package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"visitor-cli/internal/validate"
)

// Variables to hold flag values
var (
	loginEmail    string
	loginPassword string
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in as an administrator",
	Long: `Authenticates against the visitor API and saves the returned token and
profile in the config file for future commands.

Example:
  visitor-cli login --email admin@demo.com --password admin123`,
	Run: func(cmd *cobra.Command, args []string) {
		loginEmail = strings.TrimSpace(loginEmail)
		if loginPassword == "" {
			loginPassword = promptLine("Password: ")
		}

		if errs := validate.Login(loginEmail, loginPassword); errs.Any() {
			for _, field := range errs.Fields() {
				fmt.Printf("  %s: %s\n", field, errs[field])
			}
			os.Exit(1)
		}

		api := newClient(nil)
		fmt.Printf("Signing in to %s as '%s'...\n", api.Config.BaseURL, loginEmail)

		ctx, cancel := commandContext()
		defer cancel()

		s, err := api.Login(ctx, loginEmail, loginPassword)
		if err != nil {
			fail("signing in", err)
		}

		name := s.User.Name
		if name == "" {
			name = s.User.Email
		}
		fmt.Printf("Welcome, %s. Session saved.\n", name)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		if err := newClient(nil).Logout(); err != nil {
			fmt.Printf("Error clearing session: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Logged out.")
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in administrator",
	Run: func(cmd *cobra.Command, args []string) {
		user := requireLogin().Session().User

		if jsonOutput {
			printJSON(user)
			return
		}
		fmt.Printf("ID:    %s\nName:  %s\nEmail: %s\n", user.ID, user.Name, user.Email)
	},
}

func promptLine(label string) string {
	fmt.Print(label)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line)
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Administrator email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted when omitted)")
	_ = loginCmd.MarkFlagRequired("email")
}
