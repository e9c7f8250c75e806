package rest

import (
	"errors"
	"net/http"

	"lending/core"
	"lending/handler/param"
	"lending/handler/render"
)

func createUserHandler(userStr core.IUserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			UserID string `json:"user_id"`
			Role   string `json:"role"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.UserID == "" {
			render.BadRequest(w, errors.New("user_id required"))
			return
		}

		existing, err := userStr.Find(r.Context(), params.UserID)
		if err != nil {
			render.BadRequest(w, err)
			return
		}
		if existing.ID > 0 {
			render.OpError(w, core.ErrUserExists)
			return
		}

		user := &core.User{
			UserID: params.UserID,
			Role:   params.Role,
		}

		if err := userStr.Create(r.Context(), user); err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, user)
	}
}
