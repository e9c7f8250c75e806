package rest

import (
	"net/http"

	"lending/core"
	"lending/handler/param"
	"lending/handler/render"
)

func transfersHandler(transferStr core.ITransferStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := param.Int(r, "limit", 100)
		if limit > 500 {
			limit = 500
		}

		transfers, err := transferStr.Top(r.Context(), limit)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, transfers)
	}
}
