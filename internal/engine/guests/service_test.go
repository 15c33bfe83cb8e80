package guests

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"wedplan/internal/engine/webhooks"
	"wedplan/internal/platform/config"
	"wedplan/internal/platform/database"
	"wedplan/internal/platform/models"
	"wedplan/internal/platform/repositories"
)

const testWeddingID = "wed_test"

type capturedDelivery struct {
	mu        sync.Mutex
	envelopes []webhooks.Envelope
}

func (c *capturedDelivery) add(env webhooks.Envelope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.envelopes = append(c.envelopes, env)
}

func (c *capturedDelivery) all() []webhooks.Envelope {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]webhooks.Envelope(nil), c.envelopes...)
}

func setupService(t *testing.T) (*Service, *webhooks.Dispatcher, *capturedDelivery) {
	t.Helper()

	dir := t.TempDir()

	globalDB, err := sql.Open("sqlite3", filepath.Join(dir, "global.db"))
	if err != nil {
		t.Fatalf("Failed to open global db: %v", err)
	}
	globalDB.SetMaxOpenConns(1)
	t.Cleanup(func() { globalDB.Close() })

	tenantPath := filepath.Join(dir, "tenant.db")
	now := time.Now().Unix()
	_, err = globalDB.Exec(`
		CREATE TABLE weddings (
			id TEXT PRIMARY KEY,
			slug TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			db_file_path TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL,
			deleted_at INTEGER
		);
	`)
	if err != nil {
		t.Fatalf("Failed to create weddings table: %v", err)
	}
	_, err = globalDB.Exec(`
		INSERT INTO weddings (id, slug, name, db_file_path, created_at, updated_at)
		VALUES (?, 'test', 'Test', ?, ?, ?)
	`, testWeddingID, tenantPath, now, now)
	if err != nil {
		t.Fatalf("Failed to insert wedding: %v", err)
	}

	pool := database.NewTenantDBPool(config.TenantDBConfig{BasePath: dir, MaxConnectionsPerWedding: 1})
	t.Cleanup(pool.CloseAll)

	tenantDB, err := pool.Get(testWeddingID, tenantPath)
	if err != nil {
		t.Fatalf("Failed to open tenant db: %v", err)
	}
	_, err = tenantDB.Exec(`
		CREATE TABLE guests (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			group_name TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);
		CREATE TABLE api_tokens (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			token TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE TABLE webhook_endpoints (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			url TEXT NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1,
			events TEXT NOT NULL DEFAULT '{}',
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);
		CREATE TABLE webhook_logs (
			id TEXT PRIMARY KEY,
			endpoint_id TEXT NOT NULL,
			event_type TEXT NOT NULL,
			payload TEXT NOT NULL,
			response_status INTEGER NOT NULL,
			response_body TEXT NOT NULL DEFAULT '',
			success INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		t.Fatalf("Failed to create tenant tables: %v", err)
	}

	captured := &capturedDelivery{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var env webhooks.Envelope
		if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
			t.Errorf("Failed to decode envelope: %v", err)
			return
		}
		captured.add(env)
	}))
	t.Cleanup(server.Close)

	plaintext, err := webhooks.GenerateToken()
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	token := &models.AccessToken{Name: "test", Token: plaintext}
	if err := repositories.NewAccessTokenRepository(tenantDB).Create(token); err != nil {
		t.Fatalf("Failed to store token: %v", err)
	}
	endpoint := &models.WebhookEndpoint{
		Name:     "receiver",
		URL:      server.URL,
		IsActive: true,
		Events:   map[string]bool{string(webhooks.EventGuestRSVP): true},
	}
	if err := repositories.NewWebhookEndpointRepository(tenantDB).Create(endpoint); err != nil {
		t.Fatalf("Failed to create endpoint: %v", err)
	}

	dispatcher := webhooks.NewDispatcher(repositories.NewWeddingRepository(globalDB), pool, 5*time.Second)
	return NewService(NewRepository(tenantDB), dispatcher), dispatcher, captured
}

func TestCreatePendingGuestDoesNotNotify(t *testing.T) {
	service, dispatcher, captured := setupService(t)

	if err := service.Create(testWeddingID, &Guest{Name: "Ana"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	dispatcher.Wait()

	if n := len(captured.all()); n != 0 {
		t.Errorf("Adding a pending guest should not notify, got %d deliveries", n)
	}
}

func TestCreateConfirmedGuestNotifies(t *testing.T) {
	service, dispatcher, captured := setupService(t)

	if err := service.Create(testWeddingID, &Guest{Name: "Ana", Status: StatusConfirmed}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	dispatcher.Wait()

	envelopes := captured.all()
	if len(envelopes) != 1 {
		t.Fatalf("Expected 1 delivery, got %d", len(envelopes))
	}
	fields, ok := envelopes[0].Payload.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected payload object, got %T", envelopes[0].Payload)
	}
	if fields["guestName"] != "Ana" || fields["status"] != StatusConfirmed || fields["oldStatus"] != StatusPending {
		t.Errorf("Unexpected payload: %v", fields)
	}
}

func TestSetStatusNotifiesOnChangeOnly(t *testing.T) {
	service, dispatcher, captured := setupService(t)

	guest := &Guest{Name: "Ana"}
	if err := service.Create(testWeddingID, guest); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := service.SetStatus(testWeddingID, guest.ID, StatusConfirmed)
	if err != nil {
		t.Fatalf("SetStatus returned error: %v", err)
	}
	if updated.Status != StatusConfirmed {
		t.Errorf("Expected confirmed, got %q", updated.Status)
	}
	dispatcher.Wait()

	if n := len(captured.all()); n != 1 {
		t.Fatalf("Expected 1 delivery after status change, got %d", n)
	}

	// Same answer again is a no-op.
	if _, err := service.SetStatus(testWeddingID, guest.ID, StatusConfirmed); err != nil {
		t.Fatalf("SetStatus returned error: %v", err)
	}
	dispatcher.Wait()

	if n := len(captured.all()); n != 1 {
		t.Errorf("Re-submitting the same status should not notify, got %d deliveries", n)
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	service, _, _ := setupService(t)

	guest := &Guest{Name: "Ana"}
	if err := service.Create(testWeddingID, guest); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := service.SetStatus(testWeddingID, guest.ID, "maybe"); err == nil {
		t.Error("Expected error for unknown status")
	}
}

func TestUpdateWithoutStatusChangeDoesNotNotify(t *testing.T) {
	service, dispatcher, captured := setupService(t)

	guest := &Guest{Name: "Ana"}
	if err := service.Create(testWeddingID, guest); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := service.Update(testWeddingID, guest.ID, &Guest{Name: "Ana Maria", GroupName: "family"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "Ana Maria" || updated.GroupName != "family" {
		t.Errorf("Update did not apply: %+v", updated)
	}
	dispatcher.Wait()

	if n := len(captured.all()); n != 0 {
		t.Errorf("Rename without status change should not notify, got %d deliveries", n)
	}
}
