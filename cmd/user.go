package cmd

import (
	"lending/core"

	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "manage users",
}

var userInitCmd = &cobra.Command{
	Use:   "init",
	Short: "register a user",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		userID, _ := cmd.Flags().GetString("user")
		if userID == "" {
			cmd.PrintErrln("user id required")
			return
		}

		role, _ := cmd.Flags().GetString("role")

		userStore := provideUserStore(database)
		existing, err := userStore.Find(ctx, userID)
		if err != nil {
			cmd.PrintErrln("find user error:", err)
			return
		}
		if existing.ID > 0 {
			cmd.PrintErrln("user exists:", core.ErrUserExists)
			return
		}

		user := &core.User{
			UserID: userID,
			Role:   role,
		}

		if err := userStore.Create(ctx, user); err != nil {
			cmd.PrintErrln("create user error:", err)
			return
		}

		cmd.Println("user created:", user.UserID)
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userInitCmd)

	userInitCmd.Flags().String("user", "", "user id")
	userInitCmd.Flags().String("role", "", "user role")
}
