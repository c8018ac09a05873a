package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/order-tracking-api/config"
	"github.com/kendall-kelly/order-tracking-api/logger"
	"github.com/kendall-kelly/order-tracking-api/routes"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "order-tracking-api",
		Short:         "Order Tracking API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd)
		},
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	return rootCmd
}

// order-tracking-api serve
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd)
		},
	}
	cmd.Flags().String("port", "", "port to listen on (overrides PORT)")
	return cmd
}

// order-tracking-api migrate
func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the users, orders and order_activity tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootDB()
			if err != nil {
				return err
			}
			if err := config.Migrate(config.GetDB()); err != nil {
				return err
			}
			logger.L.Info("database migration completed", "env", cfg.GoEnv)
			return nil
		},
	}
}

// bootDB loads config, sets up logging and opens the database connection
func bootDB() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Init(cfg.GoEnv, cfg.LogLevel)

	if err := config.ConnectDatabase(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServer(cmd *cobra.Command) error {
	logger.L.Info("starting Order Tracking API server")

	cfg, err := bootDB()
	if err != nil {
		return err
	}

	db := config.GetDB()
	if err := config.Migrate(db); err != nil {
		return err
	}
	logger.L.Info("database migration completed")

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := routes.NewRouter(cfg, db)
	if err != nil {
		return err
	}

	port := cfg.Port
	if flag := cmd.Flags().Lookup("port"); flag != nil && flag.Value.String() != "" {
		port = flag.Value.String()
	}

	addr := ":" + port
	logger.L.Info("server is running", "addr", "http://localhost"+addr)
	return router.Run(addr)
}
