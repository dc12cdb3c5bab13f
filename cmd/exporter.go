package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/kardianos/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"visitor-cli/internal/client"
	"visitor-cli/internal/config"
	"visitor-cli/internal/metrics"
	"visitor-cli/internal/session"
)

// Variables to hold flag values
var (
	expEmail      string
	expPass       string
	expPort       string
	serviceAction string // "install", "uninstall", "start", "stop"
)

// program implements the kardianos/service interface
type program struct {
	server *http.Server
	api    *client.VisitorClient
	email  string
	pass   string
}

func (p *program) Start(s service.Service) error {
	// Start should not block. Do the actual work async.
	go p.run()
	return nil
}

func (p *program) login(ctx context.Context) error {
	_, err := p.api.Login(ctx, p.email, p.pass)
	return err
}

func (p *program) run() {
	log.Println("Attempting initial login...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err := p.login(ctx)
	cancel()
	if err != nil {
		// Exit so the service manager attempts a restart.
		log.Printf("Fatal: Initial login failed: %v", err)
		os.Exit(1)
	}
	log.Println("Initial login successful.")

	registry := prometheus.NewRegistry()
	registry.MustRegister(&metrics.VisitorCollector{
		Source:  p.api,
		Login:   p.login,
		Timeout: 30 * time.Second,
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))

	addr := fmt.Sprintf(":%s", expPort)
	p.server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("Visitor exporter listening on %s", addr)
	if err := p.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("HTTP Server error: %v", err)
	}
}

func (p *program) Stop(s service.Service) error {
	log.Println("Stopping service...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if p.server != nil {
		if err := p.server.Shutdown(ctx); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
		}
	}
	return nil
}

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Start Prometheus Exporter service",
	Long: `Starts a long-running HTTP server that exposes visitor counts as
Prometheus metrics. Can be installed as a system service.`,
	Example: `  visitor-cli exporter --api-url http://localhost:8000 --email admin@demo.com --password admin123
  visitor-cli exporter --api-url http://localhost:8000 --email admin@demo.com --password admin123 --service install`,
	Run: func(cmd *cobra.Command, args []string) {
		settings := config.Load(viper.GetViper())

		// The exporter keeps its own token in memory, apart from the CLI session.
		api := client.New(client.ClientConfig{
			BaseURL: settings.APIURL,
			Timeout: settings.Timeout,
		}, session.NewMemoryStore())

		svcConfig := &service.Config{
			Name:        "visitor-exporter",
			DisplayName: "Visitor Prometheus Exporter",
			Description: "Exposes visitor registration counts to Prometheus",
			// Arguments passed to the binary when run as a service
			Arguments: []string{
				"exporter",
				"--api-url", settings.APIURL,
				"--email", expEmail,
				"--password", expPass,
				"--port", expPort,
			},
		}

		prg := &program{api: api, email: expEmail, pass: expPass}

		s, err := service.New(prg, svcConfig)
		if err != nil {
			log.Fatal(err)
		}

		if serviceAction != "" {
			if serviceAction == "install" && (expEmail == "" || expPass == "") {
				log.Fatal("Error: You must provide --email and --password to install the service.")
			}

			if err := service.Control(s, serviceAction); err != nil {
				log.Fatalf("Failed to %s service: %v", serviceAction, err)
			}
			fmt.Printf("Service action '%s' completed successfully.\n", serviceAction)
			return
		}

		// Blocks until the service manager or an interrupt stops the program.
		logger, err := s.Logger(nil)
		if err != nil {
			log.Fatal(err)
		}
		if err = s.Run(); err != nil {
			_ = logger.Error(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(exporterCmd)
	exporterCmd.Flags().StringVar(&expEmail, "email", "", "Administrator email")
	exporterCmd.Flags().StringVar(&expPass, "password", "", "Administrator password")
	exporterCmd.Flags().StringVar(&expPort, "port", "9101", "Port to listen on")
	exporterCmd.Flags().StringVar(&serviceAction, "service", "", "Service action: install, uninstall, start, stop")
}
