package rest

import (
	"net/http"

	"lending/core"
	"lending/handler/param"
	"lending/handler/render"
	"lending/handler/views"

	"github.com/shopspring/decimal"
)

func allBanksHandler(bankStr core.IBankStore, positionStr core.IPositionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		banks, err := bankStr.All(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		bankViews := make([]*views.Bank, 0, len(banks))
		for _, bank := range banks {
			borrowers, err := positionStr.CountOfBorrowers(ctx, bank.AssetID)
			if err != nil {
				borrowers = 0
			}

			utilization := decimal.Zero
			if bank.TotalDeposits.IsPositive() {
				utilization = bank.TotalBorrows.DivRound(bank.TotalDeposits, 8)
			}

			bankViews = append(bankViews, &views.Bank{
				Bank:               *bank,
				AvailableLiquidity: bank.AvailableLiquidity(),
				UtilizationRate:    utilization,
				Borrowers:          borrowers,
			})
		}

		render.JSON(w, bankViews)
	}
}

func createBankHandler(cfg *core.Config, bankSrv core.IBankService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			AdminID                 string `json:"admin_id"`
			AssetID                 string `json:"asset_id"`
			Symbol                  string `json:"symbol"`
			PriceFeedID             string `json:"price_feed_id"`
			DepositRateBps          int64  `json:"deposit_rate_bps"`
			BorrowRateBps           int64  `json:"borrow_rate_bps"`
			MaxLTVBps               int64  `json:"max_ltv_bps"`
			LiquidationThresholdBps int64  `json:"liquidation_threshold_bps"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if !cfg.IsAdmin(params.AdminID) {
			render.OpError(w, core.ErrOperationForbidden)
			return
		}

		bank := &core.Bank{
			AssetID:                 params.AssetID,
			Symbol:                  params.Symbol,
			PriceFeedID:             params.PriceFeedID,
			DepositRateBps:          params.DepositRateBps,
			BorrowRateBps:           params.BorrowRateBps,
			MaxLTVBps:               params.MaxLTVBps,
			LiquidationThresholdBps: params.LiquidationThresholdBps,
		}

		if err := bankSrv.CreateBank(ctx, bank); err != nil {
			render.OpError(w, err)
			return
		}

		render.JSON(w, bank)
	}
}
