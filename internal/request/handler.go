package request

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
	CreateRequest(actor *auth.User, dto CreateRequestDTO) (*Request, error)
	GetRequestByID(actor *auth.User, id int64) (*Request, error)
	GetMyRequests(actor *auth.User, limit, offset int) ([]*Request, error)
	GetAllRequests(actor *auth.User, limit, offset int) ([]*Request, error)
	SetStatus(actor *auth.User, id int64, dto UpdateStatusDTO) (*Request, error)
	DeleteRequest(actor *auth.User, id int64) error
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

func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("CreateRequest: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateRequest: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.Service.CreateRequest(user, dto)
	if err != nil {
		h.Logger.Error("CreateRequest: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateRequest: request created",
		"request_id", req.ID,
		"user_id", user.ID,
		"asset_type", req.AssetType)

	h.WriteJSON(w, http.StatusCreated, req)
}

func (h *Handler) GetRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("GetRequest: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestIDStr := chi.URLParam(r, "id")
	requestID, err := strconv.ParseInt(requestIDStr, 10, 64)
	if err != nil {
		h.Logger.Error("GetRequest: invalid request ID", "id", requestIDStr)
		h.WriteError(w, http.StatusBadRequest, "invalid request ID")
		return
	}

	req, err := h.Service.GetRequestByID(user, requestID)
	if err != nil {
		h.Logger.Error("GetRequest: service error", "error", err, "request_id", requestID, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, req)
}

func (h *Handler) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("GetMyRequests: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, offset := paginationParams(r)

	requests, err := h.Service.GetMyRequests(user, limit, offset)
	if err != nil {
		h.Logger.Error("GetMyRequests: service error", "error", err, "user_id", user.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to get requests")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"requests": requests,
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *Handler) GetAllRequests(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("GetAllRequests: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, offset := paginationParams(r)

	requests, err := h.Service.GetAllRequests(user, limit, offset)
	if err != nil {
		h.Logger.Error("GetAllRequests: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"requests": requests,
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("UpdateStatus: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestIDStr := chi.URLParam(r, "id")
	requestID, err := strconv.ParseInt(requestIDStr, 10, 64)
	if err != nil {
		h.Logger.Error("UpdateStatus: invalid request ID", "id", requestIDStr)
		h.WriteError(w, http.StatusBadRequest, "invalid request ID")
		return
	}

	var dto UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateStatus: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.Service.SetStatus(user, requestID, dto)
	if err != nil {
		h.Logger.Error("UpdateStatus: service error", "error", err, "request_id", requestID, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("UpdateStatus: request status updated",
		"request_id", requestID,
		"status", req.Status,
		"user_id", user.ID)

	h.WriteJSON(w, http.StatusOK, req)
}

func (h *Handler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("DeleteRequest: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestIDStr := chi.URLParam(r, "id")
	requestID, err := strconv.ParseInt(requestIDStr, 10, 64)
	if err != nil {
		h.Logger.Error("DeleteRequest: invalid request ID", "id", requestIDStr)
		h.WriteError(w, http.StatusBadRequest, "invalid request ID")
		return
	}

	if err := h.Service.DeleteRequest(user, requestID); err != nil {
		h.Logger.Error("DeleteRequest: service error", "error", err, "request_id", requestID, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func paginationParams(r *http.Request) (int, int) {
	limit := 20
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

	return limit, offset
}
