package user

import (
	"log/slog"
	"net/http"

	"github.com/bboom-app/bboom-api/internal/api"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	ListUsers(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	userService UserService
	logger      *slog.Logger
}

func NewHandlerImpl(userService UserService, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		userService: userService,
		logger:      logger,
	}
}

// ListUsers godoc
// @Summary      Get users
// @Description  Get list of all users
// @Tags         User
// @Produce      json
// @Success      200 {array} Summary "Users"
// @Failure      401 {object} map[string]string "Unauthorized"
// @Security     BearerAuth
// @Router       /users/list/ [get]
func (h *HandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "ListUsers"))

	users, err := h.userService.ListUsers(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list users", slog.Any("error", err))
		api.DetailResponse(w, r, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, users)
}
