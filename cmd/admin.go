package cmd

import (
	"fmt"

	"github.com/khabaroff/admin-auth/src/services"
	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage admin accounts",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create USERNAME",
	Short: "Create an active admin account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminCreate,
}

var adminSeedCmd = &cobra.Command{
	Use:   "seed FILE",
	Short: "Create admin accounts listed in a YAML file, skipping existing usernames",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminSeed,
}

var adminActivateCmd = &cobra.Command{
	Use:   "activate USERNAME",
	Short: "Allow an admin account to log in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetActive(cmd, args[0], true)
	},
}

var adminDeactivateCmd = &cobra.Command{
	Use:   "deactivate USERNAME",
	Short: "Block an admin account from logging in without deleting it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetActive(cmd, args[0], false)
	},
}

func init() {
	adminCreateCmd.Flags().String("password", "", "password for the new account (at least 8 characters)")
	_ = adminCreateCmd.MarkFlagRequired("password")

	adminCmd.AddCommand(adminCreateCmd, adminSeedCmd, adminActivateCmd, adminDeactivateCmd)
	rootCmd.AddCommand(adminCmd)
}

// withAdminService opens the store for the duration of fn
func withAdminService(cmd *cobra.Command, fn func(*services.AdminService) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	repo, closeStore, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	return fn(services.NewAdminService(repo))
}

func runAdminCreate(cmd *cobra.Command, args []string) error {
	password, _ := cmd.Flags().GetString("password")

	return withAdminService(cmd, func(as *services.AdminService) error {
		admin, err := as.CreateAdminUser(cmd.Context(), args[0], password)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", admin.Username, admin.ID)
		return nil
	})
}

func runAdminSeed(cmd *cobra.Command, args []string) error {
	seed, err := services.LoadSeedFile(args[0])
	if err != nil {
		return err
	}

	return withAdminService(cmd, func(as *services.AdminService) error {
		result, err := as.Seed(cmd.Context(), seed)
		if result != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "created %d, skipped %d existing\n", len(result.Created), len(result.Skipped))
		}
		return err
	})
}

func runSetActive(cmd *cobra.Command, username string, active bool) error {
	return withAdminService(cmd, func(as *services.AdminService) error {
		if err := as.SetActive(cmd.Context(), username, active); err != nil {
			return err
		}
		state := "deactivated"
		if active {
			state = "activated"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", state, username)
		return nil
	})
}
