package main

import (
	"github.com/gin-gonic/gin"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/coach-crm/internal/config"
	"github.com/BruksfildServices01/coach-crm/internal/logging"
)

const serviceName = "coach-crm"

var envFile string

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "coach-crm",
		Short:         "Coach CRM API",
		Long:          `Multi-tenant roster and training plan API for sports coaches and their players.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(version)
		},
	}
}

// loadConfig reads and validates the configuration and installs the
// default logger. Every subcommand starts here.
func loadConfig() (*config.Config, error) {
	cfg := config.Load(envFile)
	logging.SetDefault(serviceName, version, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return nil, oops.Code("config_invalid").Wrap(err)
	}

	gin.SetMode(cfg.GinMode)
	return cfg, nil
}
