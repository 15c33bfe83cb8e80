package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apiContext "wedplan/internal/api/context"
	"wedplan/internal/engine/planner"
	"wedplan/internal/engine/webhooks"
	"wedplan/internal/pkg/errors"
	"wedplan/internal/platform/database"
)

type TaskHandler struct {
	dispatcher *webhooks.Dispatcher
}

func NewTaskHandler(dispatcher *webhooks.Dispatcher) *TaskHandler {
	return &TaskHandler{dispatcher: dispatcher}
}

func (h *TaskHandler) service(tenantCtx *database.TenantContext) *planner.Service {
	return planner.NewService(planner.NewRepository(tenantCtx.DB), h.dispatcher)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)

	var task planner.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}
	task.Completed = false

	if err := h.service(tenantCtx).Create(&task); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)

	tasks, err := h.service(tenantCtx).List()
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to list tasks", nil)
		return
	}
	if tasks == nil {
		tasks = []*planner.Task{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tasks)
}

func (h *TaskHandler) SetCompleted(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)
	params := r.Context().Value(apiContext.Params).(httprouter.Params)
	id := params.ByName("task_id")

	var req struct {
		Completed bool `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	task, err := h.service(tenantCtx).SetCompleted(tenantCtx.WeddingID, id, req.Completed)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)
	params := r.Context().Value(apiContext.Params).(httprouter.Params)
	id := params.ByName("task_id")

	if err := h.service(tenantCtx).Delete(id); err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to delete task", nil)
		return
	}

	w.WriteHeader(http.StatusOK)
}
