package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"costconsole/backend/api"
	"costconsole/backend/config"
	"costconsole/backend/database"
	"costconsole/backend/logging"
	"costconsole/backend/middleware"
	"costconsole/backend/security"
	"costconsole/backend/services"
)

const devEncryptionKey = "default-key-for-development-only"

var (
	configPath string
	seed       bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "costconsole",
	Short: "Cost console backend",
	Long: `Backend of the cost console: filter definitions and candidates, saved
filter presets, recommendations, ML runs, the expenses breakdown and the Jira panel.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Log)
		if err != nil {
			return err
		}
		logging.Set(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbCfg := cfg.Database
		dbCfg.Seed = dbCfg.Seed || seed
		if err := database.InitDB(dbCfg); err != nil {
			return err
		}
		defer database.DB.Close()
		logger.Info("Migrations completed successfully")
		return nil
	},
}

var jiraStatusCmd = &cobra.Command{
	Use:   "jira-status [user-id]",
	Short: "Show the Jira panel state of a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runJiraStatus,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default costconsole.yaml)")
	migrateCmd.Flags().BoolVar(&seed, "seed", false, "insert demo data into an empty database")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(jiraStatusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initEncryption() error {
	key := cfg.Encryption.Key
	if key == "" {
		logger.Warn("Encryption key not set, using a default key. This is NOT secure for production!")
		key = devEncryptionKey
	}
	return security.InitializeEncryption(key)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.IsDevelopment() {
		logger.Info("Running in development environment")
	}

	if err := initEncryption(); err != nil {
		return err
	}

	if err := database.InitDB(cfg.Database); err != nil {
		return err
	}
	defer database.DB.Close()

	logger.Info("Initializing Firebase Admin SDK...")
	if err := middleware.InitializeFirebase(ctx, cfg.Auth, cfg.IsDevelopment()); err != nil {
		if !cfg.IsDevelopment() {
			return fmt.Errorf("failed to initialize Firebase: %w", err)
		}
		logger.Warn("Failed to initialize Firebase, authenticated routes will reject requests", zap.Error(err))
	}

	services.StartScheduler(ctx, cfg.Scheduler.SummaryInterval)

	srv := &http.Server{
		Handler:      api.NewServer(cfg, logger).Handler(),
		Addr:         ":" + cfg.Server.Port,
		WriteTimeout: cfg.Server.WriteTimeout,
		ReadTimeout:  cfg.Server.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runJiraStatus(cmd *cobra.Command, args []string) error {
	if err := initEncryption(); err != nil {
		return err
	}
	if err := database.InitDB(cfg.Database); err != nil {
		return err
	}
	defer database.DB.Close()

	client, err := services.NewJiraClient(cmd.Context(), cfg.Jira)
	if err != nil {
		return err
	}
	status, err := client.Status(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(status)
}
