package repositories

import (
	"testing"

	"wedplan/internal/platform/models"
)

func TestEndpointCreateAndGet(t *testing.T) {
	repo := NewWebhookEndpointRepository(setupTenantDB(t))

	endpoint := &models.WebhookEndpoint{
		Name:     "zapier",
		URL:      "https://hooks.example.com/wedding",
		IsActive: true,
		Events:   map[string]bool{"guestRsvp": true, "taskCompleted": false},
	}
	if err := repo.Create(endpoint); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if endpoint.ID == "" {
		t.Fatal("Expected generated id")
	}

	got, err := repo.GetByID(endpoint.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got == nil {
		t.Fatal("Expected endpoint, got nil")
	}
	if got.Name != endpoint.Name || got.URL != endpoint.URL || !got.IsActive {
		t.Errorf("Round-trip mismatch: %+v", got)
	}
	if !got.Events["guestRsvp"] || got.Events["taskCompleted"] {
		t.Errorf("Events did not round-trip: %v", got.Events)
	}
}

func TestEndpointGetByIDMissing(t *testing.T) {
	repo := NewWebhookEndpointRepository(setupTenantDB(t))

	got, err := repo.GetByID("wh_missing")
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing endpoint, got %+v", got)
	}
}

func TestListActiveForEvent(t *testing.T) {
	repo := NewWebhookEndpointRepository(setupTenantDB(t))

	subscribed := &models.WebhookEndpoint{
		Name: "subscribed", URL: "https://a.example.com", IsActive: true,
		Events: map[string]bool{"guestRsvp": true},
	}
	optedOut := &models.WebhookEndpoint{
		Name: "opted out", URL: "https://b.example.com", IsActive: true,
		Events: map[string]bool{"guestRsvp": false, "taskCompleted": true},
	}
	inactive := &models.WebhookEndpoint{
		Name: "inactive", URL: "https://c.example.com", IsActive: false,
		Events: map[string]bool{"guestRsvp": true},
	}
	for _, e := range []*models.WebhookEndpoint{subscribed, optedOut, inactive} {
		if err := repo.Create(e); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	matched, err := repo.ListActiveForEvent("guestRsvp")
	if err != nil {
		t.Fatalf("ListActiveForEvent returned error: %v", err)
	}
	if len(matched) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matched))
	}
	if matched[0].ID != subscribed.ID {
		t.Errorf("Expected %q matched, got %q", subscribed.ID, matched[0].ID)
	}

	none, err := repo.ListActiveForEvent("songSuggested")
	if err != nil {
		t.Fatalf("ListActiveForEvent returned error: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no matches for unsubscribed event, got %d", len(none))
	}
}

func TestEndpointSetActive(t *testing.T) {
	repo := NewWebhookEndpointRepository(setupTenantDB(t))

	endpoint := &models.WebhookEndpoint{
		Name: "toggle me", URL: "https://a.example.com", IsActive: true,
		Events: map[string]bool{"giftReceived": true},
	}
	if err := repo.Create(endpoint); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := repo.SetActive(endpoint.ID, false); err != nil {
		t.Fatalf("SetActive returned error: %v", err)
	}

	got, err := repo.GetByID(endpoint.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.IsActive {
		t.Error("Expected endpoint inactive after SetActive(false)")
	}

	matched, err := repo.ListActiveForEvent("giftReceived")
	if err != nil {
		t.Fatalf("ListActiveForEvent returned error: %v", err)
	}
	if len(matched) != 0 {
		t.Errorf("Inactive endpoint should not match, got %d", len(matched))
	}
}

func TestEndpointDeleteCascadesLogs(t *testing.T) {
	db := setupTenantDB(t)
	repo := NewWebhookEndpointRepository(db)
	logs := NewWebhookLogRepository(db)

	endpoint := &models.WebhookEndpoint{
		Name: "doomed", URL: "https://a.example.com", IsActive: true,
		Events: map[string]bool{"guestRsvp": true},
	}
	if err := repo.Create(endpoint); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	entry := &models.WebhookLog{
		EndpointID:     endpoint.ID,
		EventType:      "guestRsvp",
		Payload:        `{"guestName":"Ana"}`,
		ResponseStatus: 200,
		Success:        true,
	}
	if err := logs.Create(entry); err != nil {
		t.Fatalf("Log create returned error: %v", err)
	}

	if err := repo.Delete(endpoint.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	got, err := repo.GetByID(endpoint.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got != nil {
		t.Error("Expected endpoint gone after delete")
	}

	count, err := logs.CountByEndpoint(endpoint.ID)
	if err != nil {
		t.Fatalf("CountByEndpoint returned error: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected logs removed with endpoint, got %d", count)
	}
}

func TestWebhookLogListNewestFirst(t *testing.T) {
	db := setupTenantDB(t)
	logs := NewWebhookLogRepository(db)

	for i, status := range []int{200, 503, 204} {
		entry := &models.WebhookLog{
			EndpointID:     "wh_fixed",
			EventType:      "guestRsvp",
			Payload:        "{}",
			ResponseStatus: status,
			Success:        status < 300,
		}
		if err := logs.Create(entry); err != nil {
			t.Fatalf("Create %d returned error: %v", i, err)
		}
	}

	listed, err := logs.ListByEndpoint("wh_fixed", 2)
	if err != nil {
		t.Fatalf("ListByEndpoint returned error: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("Expected limit applied, got %d entries", len(listed))
	}
	if listed[0].ResponseStatus != 204 || listed[1].ResponseStatus != 503 {
		t.Errorf("Expected newest-first ordering, got %d then %d", listed[0].ResponseStatus, listed[1].ResponseStatus)
	}
}
