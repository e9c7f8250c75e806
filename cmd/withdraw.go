package cmd

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "withdraw an amount from an asset bank",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		userID, _ := cmd.Flags().GetString("user")
		assetID, _ := cmd.Flags().GetString("asset")
		feedID, _ := cmd.Flags().GetString("feed")

		amount, err := decimal.NewFromString(mustFlagString(cmd, "amount"))
		if err != nil || !amount.IsPositive() {
			cmd.PrintErrln("invalid amount")
			return
		}

		database := provideDatabase()
		defer database.Close()

		if err := provideLendingService(database, provideBankStore(database)).Withdraw(ctx, userID, assetID, amount, feedID); err != nil {
			cmd.PrintErrln("withdraw error:", err)
			return
		}

		cmd.Println("withdrawn", amount, "of", assetID)
	},
}

func init() {
	rootCmd.AddCommand(withdrawCmd)

	withdrawCmd.Flags().String("user", "", "user id")
	withdrawCmd.Flags().String("asset", "", "asset id")
	withdrawCmd.Flags().String("amount", "", "amount to withdraw")
	withdrawCmd.Flags().String("feed", "", "price feed override for the collateral check")
}
