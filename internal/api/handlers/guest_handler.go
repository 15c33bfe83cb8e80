package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apiContext "wedplan/internal/api/context"
	"wedplan/internal/engine/guests"
	"wedplan/internal/engine/webhooks"
	"wedplan/internal/pkg/errors"
	"wedplan/internal/platform/database"
)

type GuestHandler struct {
	dispatcher *webhooks.Dispatcher
}

func NewGuestHandler(dispatcher *webhooks.Dispatcher) *GuestHandler {
	return &GuestHandler{dispatcher: dispatcher}
}

func (h *GuestHandler) service(tenantCtx *database.TenantContext) *guests.Service {
	return guests.NewService(guests.NewRepository(tenantCtx.DB), h.dispatcher)
}

func (h *GuestHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)

	var guest guests.Guest
	if err := json.NewDecoder(r.Body).Decode(&guest); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if err := h.service(tenantCtx).Create(tenantCtx.WeddingID, &guest); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(guest)
}

func (h *GuestHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)

	list, err := h.service(tenantCtx).List()
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to list guests", nil)
		return
	}
	if list == nil {
		list = []*guests.Guest{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func (h *GuestHandler) Update(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)
	params := r.Context().Value(apiContext.Params).(httprouter.Params)
	id := params.ByName("guest_id")

	var updates guests.Guest
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	guest, err := h.service(tenantCtx).Update(tenantCtx.WeddingID, id, &updates)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(guest)
}

// SetStatus is the RSVP endpoint. Fires the guestRsvp webhook when the
// answer changed.
func (h *GuestHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)
	params := r.Context().Value(apiContext.Params).(httprouter.Params)
	id := params.ByName("guest_id")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	guest, err := h.service(tenantCtx).SetStatus(tenantCtx.WeddingID, id, req.Status)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(guest)
}

func (h *GuestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)
	params := r.Context().Value(apiContext.Params).(httprouter.Params)
	id := params.ByName("guest_id")

	if err := h.service(tenantCtx).Delete(id); err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to delete guest", nil)
		return
	}

	w.WriteHeader(http.StatusOK)
}
