package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/admin-auth/src/config"
	"github.com/khabaroff/admin-auth/src/middleware"
	"github.com/khabaroff/admin-auth/src/server"
	"github.com/khabaroff/admin-auth/src/services"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8080, "HTTP listen port")
	_ = viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log.Info().
		Int("port", cfg.Port).
		Str("log_level", cfg.LogLevel).
		Str("database_driver", cfg.DatabaseDriver).
		Msg("starting server")

	if cfg.JWTSecretGenerated {
		log.Warn().Msg("JWT_SECRET not set, using a random secret; issued tokens will not survive a restart")
	}
	if err := middleware.SetJWTSecret(cfg.JWTSecret); err != nil {
		return err
	}
	middleware.SetTokenOptions(cfg.TokenIssuer, cfg.TokenTTL)

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	repo, closeStore, err := openStore(ctx, cfg)
	cancel()
	if err != nil {
		return err
	}
	defer closeStore()

	adminService := services.NewAdminService(repo)
	seedInitialAdmin(cmd.Context(), cfg, adminService)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := server.NewHTTPServer(cfg, server.NewRouter(cfg, adminService))

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	case err := <-errCh:
		return err
	}

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server shut down successfully")
	return nil
}

// seedInitialAdmin creates ADMIN_USERNAME on first run, when admin_users is empty
func seedInitialAdmin(ctx context.Context, cfg *config.Config, adminService *services.AdminService) {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return
	}

	hasAdmins, err := adminService.HasAdmins(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to check for existing admin users")
		return
	}
	if hasAdmins {
		return
	}

	if _, err := adminService.CreateAdminUser(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Error().Err(err).Msg("failed to create initial admin user")
		return
	}
	log.Info().Str("username", cfg.AdminUsername).Msg("initial admin user created")
}
