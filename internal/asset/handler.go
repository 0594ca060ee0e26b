package asset

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
	CreateAsset(actor *auth.User, dto CreateAssetDTO) (*Asset, error)
	GetAsset(id int64) (*Asset, error)
	GetAllAssets(limit, offset int) ([]*Asset, error)
	UpdateAsset(actor *auth.User, id int64, dto UpdateAssetDTO) (*Asset, error)
	DeleteAsset(actor *auth.User, id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("CreateAsset: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateAssetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateAsset: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.CreateAsset(user, dto)
	if err != nil {
		h.Logger.Error("CreateAsset: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateAsset: asset registered",
		"asset_id", a.ID,
		"tag_number", a.TagNumber,
		"user_id", user.ID)

	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	assetIDStr := chi.URLParam(r, "id")
	assetID, err := strconv.ParseInt(assetIDStr, 10, 64)
	if err != nil {
		h.Logger.Error("GetAsset: invalid asset ID", "id", assetIDStr)
		h.WriteError(w, http.StatusBadRequest, "invalid asset ID")
		return
	}

	a, err := h.Service.GetAsset(assetID)
	if err != nil {
		h.Logger.Error("GetAsset: service error", "error", err, "asset_id", assetID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) GetAllAssets(w http.ResponseWriter, r *http.Request) {
	limit := 50
	offset := 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	assets, err := h.Service.GetAllAssets(limit, offset)
	if err != nil {
		h.Logger.Error("GetAllAssets: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to retrieve assets")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"assets": assets,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("UpdateAsset: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	assetIDStr := chi.URLParam(r, "id")
	assetID, err := strconv.ParseInt(assetIDStr, 10, 64)
	if err != nil {
		h.Logger.Error("UpdateAsset: invalid asset ID", "id", assetIDStr)
		h.WriteError(w, http.StatusBadRequest, "invalid asset ID")
		return
	}

	var dto UpdateAssetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateAsset: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.UpdateAsset(user, assetID, dto)
	if err != nil {
		h.Logger.Error("UpdateAsset: service error", "error", err, "asset_id", assetID, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("DeleteAsset: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	assetIDStr := chi.URLParam(r, "id")
	assetID, err := strconv.ParseInt(assetIDStr, 10, 64)
	if err != nil {
		h.Logger.Error("DeleteAsset: invalid asset ID", "id", assetIDStr)
		h.WriteError(w, http.StatusBadRequest, "invalid asset ID")
		return
	}

	if err := h.Service.DeleteAsset(user, assetID); err != nil {
		h.Logger.Error("DeleteAsset: service error", "error", err, "asset_id", assetID, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("DeleteAsset: asset deleted", "asset_id", assetID, "user_id", user.ID)
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
