package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apiContext "wedplan/internal/api/context"
	"wedplan/internal/engine/gifts"
	"wedplan/internal/engine/webhooks"
	"wedplan/internal/pkg/errors"
	"wedplan/internal/platform/database"
)

type GiftHandler struct {
	dispatcher *webhooks.Dispatcher
}

func NewGiftHandler(dispatcher *webhooks.Dispatcher) *GiftHandler {
	return &GiftHandler{dispatcher: dispatcher}
}

func (h *GiftHandler) service(tenantCtx *database.TenantContext) *gifts.Service {
	return gifts.NewService(gifts.NewRepository(tenantCtx.DB), h.dispatcher)
}

func (h *GiftHandler) LogReceived(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)

	var gift gifts.ReceivedGift
	if err := json.NewDecoder(r.Body).Decode(&gift); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if err := h.service(tenantCtx).LogReceived(tenantCtx.WeddingID, &gift); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(gift)
}

func (h *GiftHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)

	received, err := h.service(tenantCtx).List()
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to list gifts", nil)
		return
	}
	if received == nil {
		received = []*gifts.ReceivedGift{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(received)
}

func (h *GiftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)
	params := r.Context().Value(apiContext.Params).(httprouter.Params)
	id := params.ByName("gift_id")

	if err := h.service(tenantCtx).Delete(id); err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to delete gift", nil)
		return
	}

	w.WriteHeader(http.StatusOK)
}
