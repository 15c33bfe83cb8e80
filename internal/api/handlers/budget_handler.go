package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apiContext "wedplan/internal/api/context"
	"wedplan/internal/engine/budget"
	"wedplan/internal/engine/webhooks"
	"wedplan/internal/pkg/errors"
	"wedplan/internal/platform/database"
)

type BudgetHandler struct {
	dispatcher *webhooks.Dispatcher
}

func NewBudgetHandler(dispatcher *webhooks.Dispatcher) *BudgetHandler {
	return &BudgetHandler{dispatcher: dispatcher}
}

func (h *BudgetHandler) service(tenantCtx *database.TenantContext) *budget.Service {
	return budget.NewService(budget.NewRepository(tenantCtx.DB), h.dispatcher)
}

func (h *BudgetHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)

	var item budget.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if err := h.service(tenantCtx).AddItem(tenantCtx.WeddingID, &item); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)

	items, err := h.service(tenantCtx).List()
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to list budget items", nil)
		return
	}
	if items == nil {
		items = []*budget.Item{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (h *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)
	params := r.Context().Value(apiContext.Params).(httprouter.Params)
	id := params.ByName("item_id")

	var updates budget.Item
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	item, err := h.service(tenantCtx).Update(id, &updates)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)
	params := r.Context().Value(apiContext.Params).(httprouter.Params)
	id := params.ByName("item_id")

	if err := h.service(tenantCtx).Delete(id); err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to delete budget item", nil)
		return
	}

	w.WriteHeader(http.StatusOK)
}
