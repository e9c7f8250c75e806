package cmd

import (
	"sync"

	"lending/worker"
	"lending/worker/cashier"
	"lending/worker/interest"
	"lending/worker/pricesync"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "lending job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		bankStore := provideBankStore(database)
		priceStore := providePriceStore(database)
		transferStore := provideTransferStore(database)
		propertyStore := providePropertyStore(database)

		bankService := provideBankService(bankStore)
		priceService := providePriceService(database)
		walletService := provideWalletService()

		workers := []worker.Worker{
			interest.New(database, bankStore, bankService),
			pricesync.New(database, bankStore, priceStore, priceService, propertyStore),
			cashier.New(database, transferStore, walletService),
		}

		wg := sync.WaitGroup{}
		for _, w := range workers {
			wg.Add(1)

			go func(worker worker.Worker) {
				defer wg.Done()
				worker.Run(ctx)
			}(w)
		}

		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
