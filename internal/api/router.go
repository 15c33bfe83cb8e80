package api

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apiContext "wedplan/internal/api/context"
	"wedplan/internal/api/handlers"
	"wedplan/internal/api/middleware"
	"wedplan/internal/pkg/errors"
	"wedplan/internal/platform/auth"
)

type Dependencies struct {
	AuthHandler    *handlers.AuthHandler
	TokenHandler   *handlers.TokenHandler
	WebhookHandler *handlers.WebhookHandler
	GuestHandler   *handlers.GuestHandler
	TaskHandler    *handlers.TaskHandler
	BudgetHandler  *handlers.BudgetHandler
	GiftHandler    *handlers.GiftHandler
	SongHandler    *handlers.SongHandler
	HealthHandler  *handlers.HealthHandler

	AuthMiddleware   *middleware.AuthMiddleware
	TenantMiddleware *middleware.TenantMiddleware
	RateLimiter      *middleware.RateLimiter
}

func NewRouter(deps *Dependencies) *httprouter.Router {
	router := httprouter.New()

	router.GET("/health", wrap(deps.HealthHandler.Check))

	router.POST("/api/v1/auth/login", wrap(deps.AuthHandler.Login))

	authMid := deps.AuthMiddleware
	tenantMid := deps.TenantMiddleware
	read := deps.RateLimiter.Limit("api_read")
	write := deps.RateLimiter.Limit("api_write")

	// Webhook access tokens. The plaintext token is returned once on
	// creation; couples only.
	router.POST("/api/v1/tokens",
		chain(deps.TokenHandler.Create, authMid.Handle, tenantMid.Handle, write, requireRole("couple")))
	router.GET("/api/v1/tokens",
		chain(deps.TokenHandler.List, authMid.Handle, tenantMid.Handle, read, requireRole("couple")))
	router.DELETE("/api/v1/tokens/:token_id",
		chain(deps.TokenHandler.Delete, authMid.Handle, tenantMid.Handle, write, requireRole("couple")))

	// Webhook endpoints and their delivery logs
	router.POST("/api/v1/webhooks",
		chain(deps.WebhookHandler.Create, authMid.Handle, tenantMid.Handle, write, requireRole("couple")))
	router.GET("/api/v1/webhooks",
		chain(deps.WebhookHandler.List, authMid.Handle, tenantMid.Handle, read, requireRole("couple")))
	router.GET("/api/v1/webhooks/:webhook_id",
		chain(deps.WebhookHandler.Get, authMid.Handle, tenantMid.Handle, read, requireRole("couple")))
	router.PATCH("/api/v1/webhooks/:webhook_id",
		chain(deps.WebhookHandler.Update, authMid.Handle, tenantMid.Handle, write, requireRole("couple")))
	router.DELETE("/api/v1/webhooks/:webhook_id",
		chain(deps.WebhookHandler.Delete, authMid.Handle, tenantMid.Handle, write, requireRole("couple")))
	router.POST("/api/v1/webhooks/:webhook_id/toggle",
		chain(deps.WebhookHandler.Toggle, authMid.Handle, tenantMid.Handle, write, requireRole("couple")))
	router.GET("/api/v1/webhooks/:webhook_id/logs",
		chain(deps.WebhookHandler.Logs, authMid.Handle, tenantMid.Handle, read, requireRole("couple")))

	// Guest list; guests get read access, couples manage
	router.POST("/api/v1/guests",
		chain(deps.GuestHandler.Create, authMid.Handle, tenantMid.Handle, write, requireRole("couple")))
	router.GET("/api/v1/guests",
		chain(deps.GuestHandler.List, authMid.Handle, tenantMid.Handle, read))
	router.PATCH("/api/v1/guests/:guest_id",
		chain(deps.GuestHandler.Update, authMid.Handle, tenantMid.Handle, write, requireRole("couple")))
	router.POST("/api/v1/guests/:guest_id/status",
		chain(deps.GuestHandler.SetStatus, authMid.Handle, tenantMid.Handle, write))
	router.DELETE("/api/v1/guests/:guest_id",
		chain(deps.GuestHandler.Delete, authMid.Handle, tenantMid.Handle, write, requireRole("couple")))

	// Planner tasks
	router.POST("/api/v1/tasks",
		chain(deps.TaskHandler.Create, authMid.Handle, tenantMid.Handle, write, requireRole("couple")))
	router.GET("/api/v1/tasks",
		chain(deps.TaskHandler.List, authMid.Handle, tenantMid.Handle, read))
	router.POST("/api/v1/tasks/:task_id/complete",
		chain(deps.TaskHandler.SetCompleted, authMid.Handle, tenantMid.Handle, write, requireRole("couple")))
	router.DELETE("/api/v1/tasks/:task_id",
		chain(deps.TaskHandler.Delete, authMid.Handle, tenantMid.Handle, write, requireRole("couple")))

	// Budget
	router.POST("/api/v1/budget/items",
		chain(deps.BudgetHandler.AddItem, authMid.Handle, tenantMid.Handle, write, requireRole("couple")))
	router.GET("/api/v1/budget/items",
		chain(deps.BudgetHandler.List, authMid.Handle, tenantMid.Handle, read, requireRole("couple")))
	router.PATCH("/api/v1/budget/items/:item_id",
		chain(deps.BudgetHandler.Update, authMid.Handle, tenantMid.Handle, write, requireRole("couple")))
	router.DELETE("/api/v1/budget/items/:item_id",
		chain(deps.BudgetHandler.Delete, authMid.Handle, tenantMid.Handle, write, requireRole("couple")))

	// Gifts
	router.POST("/api/v1/gifts",
		chain(deps.GiftHandler.LogReceived, authMid.Handle, tenantMid.Handle, write, requireRole("couple")))
	router.GET("/api/v1/gifts",
		chain(deps.GiftHandler.List, authMid.Handle, tenantMid.Handle, read, requireRole("couple")))
	router.DELETE("/api/v1/gifts/:gift_id",
		chain(deps.GiftHandler.Delete, authMid.Handle, tenantMid.Handle, write, requireRole("couple")))

	// Soundtrack; guests may suggest songs
	router.POST("/api/v1/songs",
		chain(deps.SongHandler.Suggest, authMid.Handle, tenantMid.Handle, write))
	router.GET("/api/v1/songs",
		chain(deps.SongHandler.List, authMid.Handle, tenantMid.Handle, read))
	router.DELETE("/api/v1/songs/:song_id",
		chain(deps.SongHandler.Delete, authMid.Handle, tenantMid.Handle, write, requireRole("couple")))

	return router
}

// Helper function to chain middlewares
func chain(handler http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) httprouter.Handle {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return wrap(handler)
}

// Convert http.HandlerFunc to httprouter.Handle
func wrap(handler http.HandlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx := context.WithValue(r.Context(), apiContext.Params, ps)
		handler(w, r.WithContext(ctx))
	}
}

func requireRole(roles ...string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims := r.Context().Value(apiContext.Claims).(*auth.Claims)

			allowed := false
			for _, role := range roles {
				if claims.Role == role {
					allowed = true
					break
				}
			}

			if !allowed {
				errors.WriteError(w, http.StatusForbidden, errors.ErrCodeForbidden, "Insufficient permissions", nil)
				return
			}

			next(w, r)
		}
	}
}
