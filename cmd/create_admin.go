package cmd

import (
	"errors"

	"blog-api/auth"
	"blog-api/config"
	"blog-api/models"
	"blog-api/repositories"
	"blog-api/services"

	"github.com/spf13/cobra"
)

var (
	adminUsername string
	adminEmail    string
	adminPassword string
)

// Sign-up only ever creates standard users, so this is the way in for
// administrators.
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator or promote an existing account",
	Long: `Create an administrator, or promote the account that already uses the
given username or email.

Examples:
  blog-api create-admin --username root --email root@example.com --password 's3cret!!'
  blog-api create-admin --username ana --email ana@example.com   # promote`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminUsername == "" || adminEmail == "" {
			return errors.New("--username and --email are required")
		}

		cfg, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer closeDB(db)

		if err := config.Migrate(db); err != nil {
			return err
		}

		userService := services.NewUserService(
			repositories.NewUserRepository(db),
			auth.NewPasswordHasher(cfg.BcryptCost),
			cfg.DeleteUserContent,
			cfg.DefaultProfilePicture,
		)
		admin, err := userService.EnsureAdmin(cmd.Context(), models.SignUpRequest{
			Username: adminUsername,
			Email:    adminEmail,
			Password: adminPassword,
		})
		if err != nil {
			return err
		}

		log.Info("administrator ready", "user_id", admin.ID, "username", admin.Username)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "Administrator username")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Administrator email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Password for a new account (ignored when promoting)")
	rootCmd.AddCommand(createAdminCmd)
}
