package rest

import (
	"errors"
	"net/http"

	"lending/core"
	"lending/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	cfg *core.Config,
	userStore core.IUserStore,
	bankStore core.IBankStore,
	positionStore core.IPositionStore,
	transferStore core.ITransferStore,
	bankService core.IBankService,
	accountService core.IAccountService,
	lendingService core.ILendingService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/banks", allBanksHandler(bankStore, positionStore))
	router.Post("/banks", createBankHandler(cfg, bankService))
	router.Post("/users", createUserHandler(userStore))
	router.Get("/accounts/{user_id}", accountHandler(accountService))
	router.Get("/positions/{user_id}", positionsHandler(bankStore, positionStore))
	router.Get("/transfers", transfersHandler(transferStore))

	router.Post("/deposit", depositHandler(lendingService))
	router.Post("/withdraw", withdrawHandler(lendingService))
	router.Post("/borrow", borrowHandler(lendingService))
	router.Post("/repay", repayHandler(lendingService))

	return router
}
