package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/securecookie"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"visitor-cli/internal/config"
	"visitor-cli/internal/web"
)

var secureCookies bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web front desk and admin console",
	Long: `Serves the public check-in form at / and the admin console under /admin.
Admin sessions are kept in a signed cookie.`,
	Example: `  visitor-cli serve --listen :8080 --api-url http://localhost:8000`,
	Run: func(cmd *cobra.Command, args []string) {
		settings := config.Load(viper.GetViper())
		logger := log.New(os.Stdout, "visitor-web ", log.LstdFlags)

		secret := []byte(settings.SessionSecret)
		if len(secret) == 0 {
			// Sessions will not survive a restart.
			logger.Println("session_secret not set, using a random key")
			secret = securecookie.GenerateRandomKey(32)
		}

		gin.SetMode(gin.ReleaseMode)
		srv := web.NewServer(web.Dependencies{
			Logger:   logger,
			Settings: settings,
			Sessions: web.NewCookieStore(secret, secureCookies),
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			logger.Printf("listening on %s (api %s)", settings.Listen, settings.APIURL)
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Printf("server error: %v", err)
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("listen", "", "Address to listen on (default from config, :8080)")
	_ = viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
	serveCmd.Flags().BoolVar(&secureCookies, "secure-cookies", false, "Mark the session cookie Secure (serve behind HTTPS)")
}
