package cmd

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var borrowCmd = &cobra.Command{
	Use:   "borrow",
	Short: "borrow an amount against collateral",
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

		if err := provideLendingService(database, provideBankStore(database)).Borrow(ctx, userID, assetID, amount, feedID); err != nil {
			cmd.PrintErrln("borrow error:", err)
			return
		}

		cmd.Println("borrowed", amount, "of", assetID)
	},
}

func init() {
	rootCmd.AddCommand(borrowCmd)

	borrowCmd.Flags().String("user", "", "user id")
	borrowCmd.Flags().String("asset", "", "asset id")
	borrowCmd.Flags().String("amount", "", "amount to borrow")
	borrowCmd.Flags().String("feed", "", "price feed override for the collateral check")
}
