package webhooks

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"wedplan/internal/platform/models"
)

func ValidateEndpoint(endpoint *models.WebhookEndpoint) error {
	if strings.TrimSpace(endpoint.Name) == "" {
		return errors.New("name is required")
	}

	u, err := url.Parse(endpoint.URL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return errors.New("url must be an absolute URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("url scheme must be http or https")
	}

	for event := range endpoint.Events {
		if !Event(event).Valid() {
			return fmt.Errorf("unknown event type: %s", event)
		}
	}

	return nil
}
