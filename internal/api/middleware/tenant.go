package middleware

import (
	"context"
	"net/http"

	apiContext "wedplan/internal/api/context"
	"wedplan/internal/pkg/errors"
	"wedplan/internal/platform/auth"
	"wedplan/internal/platform/database"
	"wedplan/internal/platform/repositories"
)

// TenantMiddleware resolves the caller's active wedding and opens its
// tenant database. Everything downstream operates on that single wedding's
// file, so tenant isolation holds by construction.
type TenantMiddleware struct {
	weddingRepo *repositories.WeddingRepository
	dbPool      *database.TenantDBPool
}

func NewTenantMiddleware(weddingRepo *repositories.WeddingRepository, dbPool *database.TenantDBPool) *TenantMiddleware {
	return &TenantMiddleware{
		weddingRepo: weddingRepo,
		dbPool:      dbPool,
	}
}

func (m *TenantMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(apiContext.Claims).(*auth.Claims)
		if !ok {
			errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "No authentication claims found", nil)
			return
		}

		wedding, err := m.weddingRepo.GetByID(claims.WeddingID)
		if err != nil {
			errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to load wedding", nil)
			return
		}
		if wedding == nil {
			errors.WriteError(w, http.StatusForbidden, errors.ErrCodeForbidden, "Wedding not found", nil)
			return
		}

		db, err := m.dbPool.Get(wedding.ID, wedding.DBFilePath)
		if err != nil {
			errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to connect to wedding database", nil)
			return
		}

		ctx := context.WithValue(r.Context(), apiContext.Tenant, &database.TenantContext{
			WeddingID:   wedding.ID,
			WeddingSlug: wedding.Slug,
			DB:          db,
		})

		next(w, r.WithContext(ctx))
	}
}
