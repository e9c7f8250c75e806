package cmd

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var repayCmd = &cobra.Command{
	Use:   "repay",
	Short: "repay outstanding debt",
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

		repaid, err := provideLendingService(database, provideBankStore(database)).Repay(ctx, userID, assetID, amount)
		if err != nil {
			cmd.PrintErrln("repay error:", err)
			return
		}

		cmd.Println("repaid", repaid, "of", assetID)
	},
}

func init() {
	rootCmd.AddCommand(repayCmd)

	repayCmd.Flags().String("user", "", "user id")
	repayCmd.Flags().String("asset", "", "asset id")
	repayCmd.Flags().String("amount", "", "amount to repay")
}
