package rest

import (
	"net/http"

	"lending/core"
	"lending/handler/param"
	"lending/handler/render"
	"lending/pkg/number"
)

type operationParams struct {
	UserID  string `json:"user_id"`
	AssetID string `json:"asset_id"`
	Amount  string `json:"amount"`
	FeedID  string `json:"feed_id"`
}

func bindOperation(r *http.Request) (*operationParams, error) {
	var params operationParams
	if err := param.Binding(r, &params); err != nil {
		return nil, err
	}
	return &params, nil
}

func depositHandler(lendingSrv core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := bindOperation(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := lendingSrv.Deposit(r.Context(), params.UserID, params.AssetID, number.Decimal(params.Amount)); err != nil {
			render.OpError(w, err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}

func withdrawHandler(lendingSrv core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := bindOperation(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := lendingSrv.Withdraw(r.Context(), params.UserID, params.AssetID, number.Decimal(params.Amount), params.FeedID); err != nil {
			render.OpError(w, err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}

func borrowHandler(lendingSrv core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := bindOperation(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := lendingSrv.Borrow(r.Context(), params.UserID, params.AssetID, number.Decimal(params.Amount), params.FeedID); err != nil {
			render.OpError(w, err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}

func repayHandler(lendingSrv core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := bindOperation(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		repaid, err := lendingSrv.Repay(r.Context(), params.UserID, params.AssetID, number.Decimal(params.Amount))
		if err != nil {
			render.OpError(w, err)
			return
		}

		render.JSON(w, render.H{"status": "ok", "repaid": repaid})
	}
}
