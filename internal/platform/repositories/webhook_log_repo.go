package repositories

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"wedplan/internal/platform/models"
)

type WebhookLogRepository struct {
	db *sql.DB
}

func NewWebhookLogRepository(db *sql.DB) *WebhookLogRepository {
	return &WebhookLogRepository{db: db}
}

func (r *WebhookLogRepository) Create(entry *models.WebhookLog) error {
	if entry.ID == "" {
		entry.ID = "whlog_" + uuid.New().String()
	}
	entry.CreatedAt = time.Now().UnixNano()

	_, err := r.db.Exec(`
		INSERT INTO webhook_logs (id, endpoint_id, event_type, payload, response_status, response_body, success, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.EndpointID, entry.EventType, entry.Payload, entry.ResponseStatus, entry.ResponseBody, entry.Success, entry.CreatedAt)
	return err
}

// ListByEndpoint returns delivery logs newest first, capped at limit.
func (r *WebhookLogRepository) ListByEndpoint(endpointID string, limit int) ([]*models.WebhookLog, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(`
		SELECT id, endpoint_id, event_type, payload, response_status, response_body, success, created_at
		FROM webhook_logs WHERE endpoint_id = ? ORDER BY created_at DESC, id DESC LIMIT ?
	`, endpointID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.WebhookLog
	for rows.Next() {
		var l models.WebhookLog
		if err := rows.Scan(&l.ID, &l.EndpointID, &l.EventType, &l.Payload, &l.ResponseStatus, &l.ResponseBody, &l.Success, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}

func (r *WebhookLogRepository) CountByEndpoint(endpointID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM webhook_logs WHERE endpoint_id = ?`, endpointID).Scan(&count)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return count, nil
}
