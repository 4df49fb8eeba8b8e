package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bboom-app/bboom-api/internal/api"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	authService AuthService
	logger      *slog.Logger
}

func NewHandlerImpl(authService AuthService, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		authService: authService,
		logger:      logger,
	}
}

// Register godoc
// @Summary      Registrate user
// @Description  Create new user instance
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        body body RegisterRequest true "Registration payload"
// @Success      201 {object} RegisterResponse "Created user"
// @Failure      400 {object} map[string][]string "Validation errors"
// @Router       /users/reg/ [post]
func (h *HandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Register"))

	var req RegisterRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.DetailResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.authService.Register(ctx, req)
	if err != nil {
		if fieldErrors, ok := api.AsFieldErrors(err); ok {
			api.ValidationErrorResponse(w, r, fieldErrors)
			return
		}
		if errors.Is(err, api.ErrConflict) {
			api.ValidationErrorResponse(w, r, api.FieldErrors{
				"username": {"A user with that username already exists."},
			})
			return
		}
		l.ErrorContext(ctx, "Registration failed", slog.Any("error", err))
		api.DetailResponse(w, r, http.StatusInternalServerError, "Failed to register user")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, created)
}

// Login godoc
// @Summary      Authenticate user
// @Description  Get access and refresh JWT token
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        body body LoginRequest true "Credentials"
// @Success      200 {object} TokenPairResponse "Token pair"
// @Failure      401 {object} map[string]string "Generic authentication failure"
// @Router       /users/auth/ [post]
func (h *HandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Login"))

	var req LoginRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.DetailResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	accessToken, refreshToken, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			// One message for unknown username and wrong password alike
			api.DetailResponse(w, r, http.StatusUnauthorized, MsgNoActiveAccount)
			return
		}
		l.ErrorContext(ctx, "Login failed", slog.Any("error", err))
		api.DetailResponse(w, r, http.StatusInternalServerError, "Failed to authenticate")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, TokenPairResponse{
		Access:  accessToken,
		Refresh: refreshToken,
	})
}

// Refresh godoc
// @Summary      Refresh token pair
// @Description  Rotate a refresh token into a new access/refresh pair
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        body body RefreshRequest true "Refresh token"
// @Success      200 {object} TokenPairResponse "Token pair"
// @Failure      401 {object} map[string]string "Invalid refresh token"
// @Router       /users/refresh/ [post]
func (h *HandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Refresh"))

	var req RefreshRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.DetailResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	accessToken, refreshToken, err := h.authService.RefreshSession(ctx, req.Refresh)
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			api.DetailResponse(w, r, http.StatusUnauthorized, MsgRefreshTokenInvalid)
			return
		}
		l.ErrorContext(ctx, "Token refresh failed", slog.Any("error", err))
		api.DetailResponse(w, r, http.StatusInternalServerError, "Failed to refresh session")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, TokenPairResponse{
		Access:  accessToken,
		Refresh: refreshToken,
	})
}
