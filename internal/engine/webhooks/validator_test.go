package webhooks

import (
	"testing"

	"wedplan/internal/platform/models"
)

func TestValidateEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		endpoint models.WebhookEndpoint
		wantErr  bool
	}{
		{
			name: "valid https endpoint",
			endpoint: models.WebhookEndpoint{
				Name:   "zapier",
				URL:    "https://hooks.example.com/wedding",
				Events: map[string]bool{"guestRsvp": true},
			},
		},
		{
			name: "valid http endpoint with no subscriptions",
			endpoint: models.WebhookEndpoint{
				Name: "local receiver",
				URL:  "http://localhost:8081/hooks",
			},
		},
		{
			name: "missing name",
			endpoint: models.WebhookEndpoint{
				Name: "   ",
				URL:  "https://hooks.example.com/wedding",
			},
			wantErr: true,
		},
		{
			name: "relative url",
			endpoint: models.WebhookEndpoint{
				Name: "zapier",
				URL:  "/hooks/wedding",
			},
			wantErr: true,
		},
		{
			name: "unsupported scheme",
			endpoint: models.WebhookEndpoint{
				Name: "zapier",
				URL:  "ftp://hooks.example.com/wedding",
			},
			wantErr: true,
		},
		{
			name: "unknown event subscription",
			endpoint: models.WebhookEndpoint{
				Name:   "zapier",
				URL:    "https://hooks.example.com/wedding",
				Events: map[string]bool{"weddingCancelled": true},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEndpoint(&tt.endpoint)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEndpoint() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
