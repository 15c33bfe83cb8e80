package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apiContext "wedplan/internal/api/context"
	"wedplan/internal/platform/auth"
	"wedplan/internal/platform/config"
)

func TestAuthMiddleware(t *testing.T) {
	tokenSvc := auth.NewTokenService(config.JWTConfig{
		Secret:         "test-secret",
		AccessTokenTTL: time.Hour,
	})
	m := NewAuthMiddleware(tokenSvc)

	validToken, err := tokenSvc.GenerateAccessToken("user_1", "wed_1", "couple", "ana@example.com")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc123", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid token", "Bearer " + validToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotClaims *auth.Claims
			handler := m.Handle(func(w http.ResponseWriter, r *http.Request) {
				gotClaims, _ = r.Context().Value(apiContext.Claims).(*auth.Claims)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/guests", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("Expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantStatus == http.StatusOK {
				if gotClaims == nil {
					t.Fatal("Expected claims in context")
				}
				if gotClaims.UserID != "user_1" || gotClaims.WeddingID != "wed_1" || gotClaims.Role != "couple" {
					t.Errorf("Unexpected claims: %+v", gotClaims)
				}
			}
		})
	}
}
