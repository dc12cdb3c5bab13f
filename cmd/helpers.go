package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"visitor-cli/internal/auth"
	"visitor-cli/internal/client"
	"visitor-cli/internal/config"
	"visitor-cli/internal/session"
)

// newClient returns a client that reads and writes the session kept in the config file.
func newClient(onUnauthorized func()) *client.VisitorClient {
	settings := config.Load(viper.GetViper())
	return client.New(client.ClientConfig{
		BaseURL:        settings.APIURL,
		Timeout:        settings.Timeout,
		OnUnauthorized: onUnauthorized,
	}, session.NewFileStore(viper.GetViper()))
}

// requireLogin exits unless a session token is stored.
func requireLogin() *client.VisitorClient {
	store := session.NewFileStore(viper.GetViper())
	if auth.Check(store) != auth.Authenticated {
		fmt.Println("Error: Not logged in. Please run 'visitor-cli login' first.")
		os.Exit(1)
	}
	return newClient(func() {
		fmt.Println("Session expired. Please run 'visitor-cli login' again.")
	})
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Printf("Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}

func fail(action string, err error) {
	fmt.Printf("Error %s: %s\n", action, client.Message(err))
	os.Exit(1)
}

func commandContext() (context.Context, context.CancelFunc) {
	timeout := config.Load(viper.GetViper()).Timeout
	// Listing follows every backend page, so allow a few round trips.
	return context.WithTimeout(context.Background(), 4*timeout)
}
