package user

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/assetdesk/asset-management/internal/auth"
	"github.com/assetdesk/asset-management/internal/transport"
	"github.com/assetdesk/asset-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Register(dto RegisterDTO) (*User, error)
	GetByID(userID int64) (*User, error)
	GetAll(actor *auth.User) ([]*User, error)
	UpdateRole(actor *auth.User, userID int64, dto UpdateRoleDTO) (*User, error)
}

// TokenIssuer mints a token pair for a freshly registered account.
type TokenIssuer interface {
	IssueTokensForUser(userID int64, email, role string) (auth.AuthTokens, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Tokens  TokenIssuer
}

func NewHandler(svc ServiceAPI, tokens TokenIssuer) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		Tokens:      tokens,
	}
}

// Register handles POST /users. On success the issued access token is
// exposed via the X-Auth-Token header alongside the sanitized account body.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.Register(dto)
	if err != nil {
		h.Logger.Error("Register: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	tokens, err := h.Tokens.IssueTokensForUser(u.ID, u.Email, u.Role)
	if err != nil {
		h.Logger.Error("Register: failed to issue tokens", "error", err, "user_id", u.ID)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("X-Auth-Token", tokens.AccessToken)
	h.WriteJSON(w, http.StatusCreated, u)
}

// GetCurrentUser handles GET /users/me
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.UserFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.Service.GetByID(principal.ID)
	if err != nil {
		h.Logger.Error("GetCurrentUser: service error", "error", err, "user_id", principal.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

// ListUsers handles GET /users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.UserFromContext(r.Context())

	users, err := h.Service.GetAll(principal)
	if err != nil {
		h.Logger.Error("ListUsers: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, users)
}

// GetUser handles GET /users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	u, err := h.Service.GetByID(userID)
	if err != nil {
		h.Logger.Error("GetUser: service error", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

// UpdateRole handles PATCH /users/{id}/role
func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.UserFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var dto UpdateRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.UpdateRole(principal, userID, dto)
	if err != nil {
		h.Logger.Error("UpdateRole: service error", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}
