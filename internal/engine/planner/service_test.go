package planner

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
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

type fixture struct {
	service    *Service
	dispatcher *webhooks.Dispatcher
	tenantDB   *sql.DB
	hits       *atomic.Int64
	serverURL  string
}

func setupFixture(t *testing.T) *fixture {
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
		CREATE TABLE tasks (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
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

	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	t.Cleanup(server.Close)

	plaintext, err := webhooks.GenerateToken()
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	if err := repositories.NewAccessTokenRepository(tenantDB).Create(&models.AccessToken{Name: "test", Token: plaintext}); err != nil {
		t.Fatalf("Failed to store token: %v", err)
	}

	dispatcher := webhooks.NewDispatcher(repositories.NewWeddingRepository(globalDB), pool, 5*time.Second)
	return &fixture{
		service:    NewService(NewRepository(tenantDB), dispatcher),
		dispatcher: dispatcher,
		tenantDB:   tenantDB,
		hits:       &hits,
		serverURL:  server.URL,
	}
}

func (f *fixture) addEndpoint(t *testing.T, url string) *models.WebhookEndpoint {
	t.Helper()

	endpoint := &models.WebhookEndpoint{
		Name:     "receiver",
		URL:      url,
		IsActive: true,
		Events:   map[string]bool{string(webhooks.EventTaskCompleted): true},
	}
	if err := repositories.NewWebhookEndpointRepository(f.tenantDB).Create(endpoint); err != nil {
		t.Fatalf("Failed to create endpoint: %v", err)
	}
	return endpoint
}

func TestSetCompletedNotifiesOnTransitionOnly(t *testing.T) {
	f := setupFixture(t)
	f.addEndpoint(t, f.serverURL)

	task := &Task{Text: "book venue"}
	if err := f.service.Create(task); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := f.service.SetCompleted(testWeddingID, task.ID, true)
	if err != nil {
		t.Fatalf("SetCompleted returned error: %v", err)
	}
	if !updated.Completed {
		t.Error("Expected task completed")
	}
	f.dispatcher.Wait()
	if f.hits.Load() != 1 {
		t.Fatalf("Expected 1 delivery on completion, got %d", f.hits.Load())
	}

	// Completing an already completed task changes nothing.
	if _, err := f.service.SetCompleted(testWeddingID, task.ID, true); err != nil {
		t.Fatalf("SetCompleted returned error: %v", err)
	}
	f.dispatcher.Wait()
	if f.hits.Load() != 1 {
		t.Errorf("Repeated completion should not notify, got %d deliveries", f.hits.Load())
	}

	// Unchecking does not notify either.
	if _, err := f.service.SetCompleted(testWeddingID, task.ID, false); err != nil {
		t.Fatalf("SetCompleted returned error: %v", err)
	}
	f.dispatcher.Wait()
	if f.hits.Load() != 1 {
		t.Errorf("Unchecking should not notify, got %d deliveries", f.hits.Load())
	}
}

func TestSetCompletedSurvivesDeadEndpoint(t *testing.T) {
	f := setupFixture(t)

	deadServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := deadServer.URL
	deadServer.Close()
	endpoint := f.addEndpoint(t, deadURL)

	task := &Task{Text: "send invites"}
	if err := f.service.Create(task); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// The task update must succeed even though every delivery fails.
	updated, err := f.service.SetCompleted(testWeddingID, task.ID, true)
	if err != nil {
		t.Fatalf("SetCompleted returned error: %v", err)
	}
	if !updated.Completed {
		t.Error("Expected task completed despite delivery failure")
	}
	f.dispatcher.Wait()

	stored, err := f.service.repo.GetByID(task.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if !stored.Completed {
		t.Error("Expected completion persisted despite delivery failure")
	}

	logs, err := repositories.NewWebhookLogRepository(f.tenantDB).ListByEndpoint(endpoint.ID, 10)
	if err != nil {
		t.Fatalf("ListByEndpoint returned error: %v", err)
	}
	if len(logs) != 1 || logs[0].Success {
		t.Errorf("Expected one failed delivery log, got %+v", logs)
	}
}

func TestCreateRequiresText(t *testing.T) {
	f := setupFixture(t)

	if err := f.service.Create(&Task{Text: "   "}); err == nil {
		t.Error("Expected error for blank task text")
	}
}
