package cmd

import (
	"encoding/json"

	"lending/core"

	"github.com/spf13/cobra"
)

// governing command for banks
var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "manage asset banks",
}

var bankInitCmd = &cobra.Command{
	Use:   "init",
	Short: "initialize a bank for an asset",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		assetID, _ := cmd.Flags().GetString("asset")
		symbol, _ := cmd.Flags().GetString("symbol")
		feedID, _ := cmd.Flags().GetString("feed")
		depositRate, _ := cmd.Flags().GetInt64("deposit-rate")
		borrowRate, _ := cmd.Flags().GetInt64("borrow-rate")
		maxLTV, _ := cmd.Flags().GetInt64("max-ltv")
		liquidation, _ := cmd.Flags().GetInt64("liquidation-threshold")

		bank := &core.Bank{
			AssetID:                 assetID,
			Symbol:                  symbol,
			PriceFeedID:             feedID,
			DepositRateBps:          depositRate,
			BorrowRateBps:           borrowRate,
			MaxLTVBps:               maxLTV,
			LiquidationThresholdBps: liquidation,
		}

		bankService := provideBankService(provideBankStore(database))
		if err := bankService.CreateBank(ctx, bank); err != nil {
			cmd.PrintErrln("create bank error:", err)
			return
		}

		cmd.Println("bank created:", bank.AssetID)
	},
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "list all banks",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		banks, err := provideBankStore(database).All(ctx)
		if err != nil {
			cmd.PrintErrln("list banks error:", err)
			return
		}

		bts, err := json.MarshalIndent(banks, "", "    ")
		if err != nil {
			cmd.PrintErrln(err)
			return
		}

		cmd.Println(string(bts))
	},
}

func init() {
	rootCmd.AddCommand(bankCmd)
	bankCmd.AddCommand(bankInitCmd)
	bankCmd.AddCommand(bankListCmd)

	bankInitCmd.Flags().String("asset", "", "asset id")
	bankInitCmd.Flags().String("symbol", "", "asset symbol")
	bankInitCmd.Flags().String("feed", "", "price feed id")
	bankInitCmd.Flags().Int64("deposit-rate", 0, "deposit rate in basis points")
	bankInitCmd.Flags().Int64("borrow-rate", 0, "borrow rate in basis points")
	bankInitCmd.Flags().Int64("max-ltv", 0, "max loan-to-value in basis points")
	bankInitCmd.Flags().Int64("liquidation-threshold", 0, "liquidation threshold in basis points")
}
