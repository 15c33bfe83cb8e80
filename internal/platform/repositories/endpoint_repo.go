package repositories

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"wedplan/internal/platform/models"
)

type WebhookEndpointRepository struct {
	db *sql.DB
}

func NewWebhookEndpointRepository(db *sql.DB) *WebhookEndpointRepository {
	return &WebhookEndpointRepository{db: db}
}

func (r *WebhookEndpointRepository) Create(endpoint *models.WebhookEndpoint) error {
	if endpoint.ID == "" {
		endpoint.ID = "wh_" + uuid.New().String()
	}
	endpoint.CreatedAt = time.Now().Unix()
	endpoint.UpdatedAt = endpoint.CreatedAt

	eventsJSON, err := json.Marshal(endpoint.Events)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`
		INSERT INTO webhook_endpoints (id, name, url, is_active, events, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, endpoint.ID, endpoint.Name, endpoint.URL, endpoint.IsActive, string(eventsJSON), endpoint.CreatedAt, endpoint.UpdatedAt)
	return err
}

func (r *WebhookEndpointRepository) GetByID(id string) (*models.WebhookEndpoint, error) {
	row := r.db.QueryRow(`
		SELECT id, name, url, is_active, events, created_at, updated_at
		FROM webhook_endpoints WHERE id = ?
	`, id)

	endpoint, err := scanEndpoint(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return endpoint, nil
}

func (r *WebhookEndpointRepository) List() ([]*models.WebhookEndpoint, error) {
	rows, err := r.db.Query(`
		SELECT id, name, url, is_active, events, created_at, updated_at
		FROM webhook_endpoints ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var endpoints []*models.WebhookEndpoint
	for rows.Next() {
		endpoint, err := scanEndpoint(rows)
		if err != nil {
			return nil, err
		}
		endpoints = append(endpoints, endpoint)
	}
	return endpoints, rows.Err()
}

// ListActiveForEvent returns every endpoint that should receive the given
// event type: active and opted in to that event. The events column is a
// JSON object, so the opt-in check happens here rather than in SQL.
func (r *WebhookEndpointRepository) ListActiveForEvent(eventType string) ([]*models.WebhookEndpoint, error) {
	rows, err := r.db.Query(`
		SELECT id, name, url, is_active, events, created_at, updated_at
		FROM webhook_endpoints WHERE is_active = 1
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matched []*models.WebhookEndpoint
	for rows.Next() {
		endpoint, err := scanEndpoint(rows)
		if err != nil {
			return nil, err
		}
		if endpoint.Events[eventType] {
			matched = append(matched, endpoint)
		}
	}
	return matched, rows.Err()
}

func (r *WebhookEndpointRepository) Update(endpoint *models.WebhookEndpoint) error {
	endpoint.UpdatedAt = time.Now().Unix()

	eventsJSON, err := json.Marshal(endpoint.Events)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`
		UPDATE webhook_endpoints SET name = ?, url = ?, is_active = ?, events = ?, updated_at = ?
		WHERE id = ?
	`, endpoint.Name, endpoint.URL, endpoint.IsActive, string(eventsJSON), endpoint.UpdatedAt, endpoint.ID)
	return err
}

func (r *WebhookEndpointRepository) SetActive(id string, active bool) error {
	_, err := r.db.Exec(`
		UPDATE webhook_endpoints SET is_active = ?, updated_at = ? WHERE id = ?
	`, active, time.Now().Unix(), id)
	return err
}

// Delete removes the endpoint and its delivery logs. Logs have no lifetime
// of their own; they exist only under a parent endpoint.
func (r *WebhookEndpointRepository) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM webhook_logs WHERE endpoint_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM webhook_endpoints WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEndpoint(row rowScanner) (*models.WebhookEndpoint, error) {
	var e models.WebhookEndpoint
	var eventsStr string

	if err := row.Scan(&e.ID, &e.Name, &e.URL, &e.IsActive, &eventsStr, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(eventsStr), &e.Events); err != nil {
		e.Events = map[string]bool{}
	}
	return &e, nil
}
