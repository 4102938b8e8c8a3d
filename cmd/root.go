package cmd

import (
	"fmt"
	"os"

	"github.com/khabaroff/admin-auth/src/config"
	"github.com/khabaroff/admin-auth/src/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "admin-auth",
	Short: "Admin login service",
	Long: `admin-auth authenticates back-office administrators:
- POST /api/admin/auth/login checks credentials against admin_users
- issues a signed session token and records the last login time
- PostgreSQL or SQLite storage, configured through environment or a YAML file`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./admin-auth.yaml)")
	rootCmd.PersistentFlags().String("database-driver", "", "storage backend: postgres or sqlite")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	_ = viper.BindPFlag("database_driver", rootCmd.PersistentFlags().Lookup("database-driver"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/admin-auth/")
		viper.SetConfigType("yaml")
		viper.SetConfigName("admin-auth")
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig reads the configuration and initializes logging
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	logging.Setup(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	return cfg, nil
}
