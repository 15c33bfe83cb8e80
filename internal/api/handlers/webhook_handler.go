package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	apiContext "wedplan/internal/api/context"
	"wedplan/internal/engine/webhooks"
	"wedplan/internal/pkg/errors"
	"wedplan/internal/platform/database"
	"wedplan/internal/platform/models"
	"wedplan/internal/platform/repositories"
)

type WebhookHandler struct{}

func NewWebhookHandler() *WebhookHandler {
	return &WebhookHandler{}
}

type webhookRequest struct {
	Name     string          `json:"name"`
	URL      string          `json:"url"`
	IsActive *bool           `json:"is_active"`
	Events   map[string]bool `json:"events"`
}

func (h *WebhookHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)

	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	endpoint := &models.WebhookEndpoint{
		Name:     req.Name,
		URL:      req.URL,
		IsActive: true,
		Events:   req.Events,
	}
	if req.IsActive != nil {
		endpoint.IsActive = *req.IsActive
	}
	if endpoint.Events == nil {
		endpoint.Events = map[string]bool{}
	}

	if err := webhooks.ValidateEndpoint(endpoint); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	repo := repositories.NewWebhookEndpointRepository(tenantCtx.DB)
	if err := repo.Create(endpoint); err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to create webhook", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(endpoint)
}

func (h *WebhookHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)

	repo := repositories.NewWebhookEndpointRepository(tenantCtx.DB)
	endpoints, err := repo.List()
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to list webhooks", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(endpoints)
}

func (h *WebhookHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)
	params := r.Context().Value(apiContext.Params).(httprouter.Params)
	id := params.ByName("webhook_id")

	repo := repositories.NewWebhookEndpointRepository(tenantCtx.DB)
	endpoint, err := repo.GetByID(id)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to load webhook", nil)
		return
	}
	if endpoint == nil {
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Webhook not found", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(endpoint)
}

func (h *WebhookHandler) Update(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)
	params := r.Context().Value(apiContext.Params).(httprouter.Params)
	id := params.ByName("webhook_id")

	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	repo := repositories.NewWebhookEndpointRepository(tenantCtx.DB)
	endpoint, err := repo.GetByID(id)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to load webhook", nil)
		return
	}
	if endpoint == nil {
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Webhook not found", nil)
		return
	}

	if req.Name != "" {
		endpoint.Name = req.Name
	}
	if req.URL != "" {
		endpoint.URL = req.URL
	}
	if req.Events != nil {
		endpoint.Events = req.Events
	}
	if req.IsActive != nil {
		endpoint.IsActive = *req.IsActive
	}

	if err := webhooks.ValidateEndpoint(endpoint); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	if err := repo.Update(endpoint); err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to update webhook", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(endpoint)
}

// Toggle flips is_active. Takes effect on the next dispatch; there is no
// transition delay.
func (h *WebhookHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)
	params := r.Context().Value(apiContext.Params).(httprouter.Params)
	id := params.ByName("webhook_id")

	repo := repositories.NewWebhookEndpointRepository(tenantCtx.DB)
	endpoint, err := repo.GetByID(id)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to load webhook", nil)
		return
	}
	if endpoint == nil {
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Webhook not found", nil)
		return
	}

	endpoint.IsActive = !endpoint.IsActive
	if err := repo.SetActive(id, endpoint.IsActive); err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to update webhook", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(endpoint)
}

func (h *WebhookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)
	params := r.Context().Value(apiContext.Params).(httprouter.Params)
	id := params.ByName("webhook_id")

	repo := repositories.NewWebhookEndpointRepository(tenantCtx.DB)
	if err := repo.Delete(id); err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to delete webhook", nil)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *WebhookHandler) Logs(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)
	params := r.Context().Value(apiContext.Params).(httprouter.Params)
	id := params.ByName("webhook_id")

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid limit", nil)
			return
		}
		if parsed > 200 {
			parsed = 200
		}
		limit = parsed
	}

	endpointRepo := repositories.NewWebhookEndpointRepository(tenantCtx.DB)
	endpoint, err := endpointRepo.GetByID(id)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to load webhook", nil)
		return
	}
	if endpoint == nil {
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Webhook not found", nil)
		return
	}

	logRepo := repositories.NewWebhookLogRepository(tenantCtx.DB)
	logs, err := logRepo.ListByEndpoint(id, limit)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to list delivery logs", nil)
		return
	}
	if logs == nil {
		logs = []*models.WebhookLog{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(logs)
}
