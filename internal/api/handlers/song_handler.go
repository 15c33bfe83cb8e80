package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apiContext "wedplan/internal/api/context"
	"wedplan/internal/engine/soundtrack"
	"wedplan/internal/engine/webhooks"
	"wedplan/internal/pkg/errors"
	"wedplan/internal/platform/database"
)

type SongHandler struct {
	dispatcher *webhooks.Dispatcher
}

func NewSongHandler(dispatcher *webhooks.Dispatcher) *SongHandler {
	return &SongHandler{dispatcher: dispatcher}
}

func (h *SongHandler) service(tenantCtx *database.TenantContext) *soundtrack.Service {
	return soundtrack.NewService(soundtrack.NewRepository(tenantCtx.DB), h.dispatcher)
}

func (h *SongHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)

	var song soundtrack.Song
	if err := json.NewDecoder(r.Body).Decode(&song); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if err := h.service(tenantCtx).Suggest(tenantCtx.WeddingID, &song); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(song)
}

func (h *SongHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)

	songs, err := h.service(tenantCtx).List()
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to list songs", nil)
		return
	}
	if songs == nil {
		songs = []*soundtrack.Song{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(songs)
}

func (h *SongHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)
	params := r.Context().Value(apiContext.Params).(httprouter.Params)
	id := params.ByName("song_id")

	if err := h.service(tenantCtx).Delete(id); err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to delete song", nil)
		return
	}

	w.WriteHeader(http.StatusOK)
}
