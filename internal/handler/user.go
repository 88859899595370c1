package handler

import (
	"log/slog"
	"net/http"

	"github.com/jaehyukc/growlog/internal/service"
)

// UserHandler exposes the linked-account routes under /api/user/{githubId}.
type UserHandler struct {
	accounts *service.AccountService
	logger   *slog.Logger
}

func NewUserHandler(accounts *service.AccountService, logger *slog.Logger) *UserHandler {
	return &UserHandler{accounts: accounts, logger: logger}
}

// HandleGet returns the stored profile for a linked account. The access
// token is excluded by the model's JSON tags.
//
// HTTP: GET /api/user/{githubId}
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.accounts.GetByGithubID(r.Context(), r.PathValue("githubId"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleDelete unlinks an account and deletes its notes. Administrative —
// nothing in the login flow reaches this.
//
// HTTP: DELETE /api/user/{githubId}
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.Delete(r.Context(), r.PathValue("githubId")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
