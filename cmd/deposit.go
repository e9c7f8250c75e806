package cmd

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var depositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "deposit an amount into an asset bank",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		userID, _ := cmd.Flags().GetString("user")
		assetID, _ := cmd.Flags().GetString("asset")

		amount, err := decimal.NewFromString(mustFlagString(cmd, "amount"))
		if err != nil || !amount.IsPositive() {
			cmd.PrintErrln("invalid amount")
			return
		}

		database := provideDatabase()
		defer database.Close()

		if err := provideLendingService(database, provideBankStore(database)).Deposit(ctx, userID, assetID, amount); err != nil {
			cmd.PrintErrln("deposit error:", err)
			return
		}

		cmd.Println("deposited", amount, "of", assetID)
	},
}

func mustFlagString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(err)
	}
	return v
}

func init() {
	rootCmd.AddCommand(depositCmd)

	depositCmd.Flags().String("user", "", "user id")
	depositCmd.Flags().String("asset", "", "asset id")
	depositCmd.Flags().String("amount", "", "amount to deposit")
}
