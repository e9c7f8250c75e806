package rest

import (
	"net/http"
	"time"

	"lending/core"
	"lending/handler/render"
	"lending/handler/views"
	"lending/internal/lending"

	"github.com/go-chi/chi"
)

func accountHandler(accountSrv core.IAccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID := chi.URLParam(r, "user_id")
		if userID == "" {
			render.OpError(w, core.ErrUserNotFound)
			return
		}

		health, err := accountSrv.CheckHealth(ctx, userID, nil, time.Now())
		if err != nil {
			render.OpError(w, err)
			return
		}

		render.JSON(w, health)
	}
}

func positionsHandler(bankStr core.IBankStore, positionStr core.IPositionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID := chi.URLParam(r, "user_id")
		if userID == "" {
			render.OpError(w, core.ErrUserNotFound)
			return
		}

		positions, err := positionStr.FindByUser(ctx, userID)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		banks, err := bankStr.AllAsMap(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		now := time.Now()
		positionViews := make([]*views.Position, 0, len(positions))
		for _, position := range positions {
			view := &views.Position{Position: *position}
			if bank, ok := banks[position.AssetID]; ok {
				b := *bank
				lending.Accrue(&b, now)
				view.Redeemable = lending.AmountForShares(position.DepositShares, b.DepositorPool(), b.TotalDepositShares)
				view.Outstanding = lending.AmountForShares(position.BorrowShares, b.TotalBorrows, b.TotalBorrowShares)
			}
			positionViews = append(positionViews, view)
		}

		render.JSON(w, positionViews)
	}
}
