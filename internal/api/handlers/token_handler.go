package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	apiContext "wedplan/internal/api/context"
	"wedplan/internal/engine/webhooks"
	"wedplan/internal/pkg/errors"
	"wedplan/internal/platform/database"
	"wedplan/internal/platform/models"
	"wedplan/internal/platform/repositories"
)

// TokenHandler manages webhook access tokens. The plaintext token appears
// exactly once, in the Create response; List only ever shows it masked.
type TokenHandler struct{}

func NewTokenHandler() *TokenHandler {
	return &TokenHandler{}
}

type createTokenRequest struct {
	Name string `json:"name"`
}

type createTokenResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Token     string `json:"token"`
	CreatedAt int64  `json:"created_at"`
}

func (h *TokenHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)

	var req createTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Token name is required", nil)
		return
	}

	plaintext, err := webhooks.GenerateToken()
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to generate token", nil)
		return
	}

	token := &models.AccessToken{
		Name:  strings.TrimSpace(req.Name),
		Token: plaintext,
	}

	repo := repositories.NewAccessTokenRepository(tenantCtx.DB)
	if err := repo.Create(token); err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to save token", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(createTokenResponse{
		ID:        token.ID,
		Name:      token.Name,
		Token:     plaintext,
		CreatedAt: token.CreatedAt,
	})
}

type tokenListEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MaskedToken string `json:"masked_token"`
	CreatedAt   int64  `json:"created_at"`
}

func (h *TokenHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)

	repo := repositories.NewAccessTokenRepository(tenantCtx.DB)
	tokens, err := repo.List()
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to list tokens", nil)
		return
	}

	entries := make([]tokenListEntry, 0, len(tokens))
	for _, t := range tokens {
		entries = append(entries, tokenListEntry{
			ID:          t.ID,
			Name:        t.Name,
			MaskedToken: webhooks.MaskToken(t.Token),
			CreatedAt:   t.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// Delete revokes a token immediately. Deliveries that relied on it simply
// start failing authentication upstream; there is no grace period.
func (h *TokenHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tenantCtx := r.Context().Value(apiContext.Tenant).(*database.TenantContext)
	params := r.Context().Value(apiContext.Params).(httprouter.Params)
	id := params.ByName("token_id")

	repo := repositories.NewAccessTokenRepository(tenantCtx.DB)
	if err := repo.Delete(id); err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to delete token", nil)
		return
	}

	w.WriteHeader(http.StatusOK)
}
