package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chadmarket/backoffice/internal/backend"
	"github.com/chadmarket/backoffice/internal/server"
	"github.com/chadmarket/backoffice/internal/service"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		host string
		noUI bool
		dev  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the back-office HTTP server",
		Long:  "Start the HTTP server that serves the admin console pages and its JSON API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(host, port, noUI, dev)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP listen port")
	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "HTTP listen host")
	cmd.Flags().BoolVar(&noUI, "no-ui", false, "Disable the embedded console UI")
	cmd.Flags().BoolVar(&dev, "dev", false, "Enable development mode (verbose logging, plain-HTTP cookies)")

	viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", cmd.Flags().Lookup("host"))

	return cmd
}

func runServe(host string, port int, noUI, dev bool) error {
	logLevel := slog.LevelInfo
	if dev {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	st, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	logger.Info("store opened", "driver", viper.GetString("db.driver"))

	backendURL := viper.GetString("backend.url")
	backendKey := viper.GetString("backend.api_key")
	if backendURL == "" {
		logger.Warn("backend.url not set - logins will fail until the identity provider is configured")
	}
	identity := backend.NewIdentityClient(backendURL, backendKey)
	bucket := viper.GetString("backend.documents_bucket")
	if bucket == "" {
		bucket = "documents"
	}
	storage := backend.NewStorageClient(backendURL, backendKey, bucket)

	svc := server.Services{
		Auth:          service.NewAuth(st, identity, jwtSecret()),
		Verifications: service.NewVerifications(st, storage),
		Moderation:    service.NewModeration(st),
		Directory:     service.NewDirectory(st),
		Dashboard:     service.NewDashboard(st),
	}

	cfg := server.Config{
		Host:            host,
		Port:            port,
		ShutdownTimeout: 30 * time.Second,
		CORSOrigins:     []string{"*"},
		EnableUI:        !noUI,
		SecureCookies:   !dev,
		LoginRateLimit:  10,
	}
	srv := server.New(cfg, st, svc, logger)

	fmt.Printf("→ Listening on http://%s:%d\n", host, port)
	if !noUI {
		fmt.Printf("→ Console: http://%s:%d/\n", host, port)
	}
	fmt.Printf("→ Health:  http://%s:%d/healthz\n", host, port)
	fmt.Println()

	return srv.ListenAndServe()
}
