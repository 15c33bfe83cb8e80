package repositories

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"wedplan/internal/platform/models"
)

// AccessTokenRepository stores webhook access tokens in a wedding's tenant
// database. created_at is nanosecond-resolution so "most recently created"
// is well defined even for tokens issued back to back.
type AccessTokenRepository struct {
	db *sql.DB
}

func NewAccessTokenRepository(db *sql.DB) *AccessTokenRepository {
	return &AccessTokenRepository{db: db}
}

func (r *AccessTokenRepository) Create(token *models.AccessToken) error {
	if token.ID == "" {
		token.ID = "tok_" + uuid.New().String()
	}
	token.CreatedAt = time.Now().UnixNano()

	_, err := r.db.Exec(`
		INSERT INTO api_tokens (id, name, token, created_at)
		VALUES (?, ?, ?, ?)
	`, token.ID, token.Name, token.Token, token.CreatedAt)
	return err
}

// GetActive returns the most recently created token, or nil if the wedding
// has none. Ties on created_at break by id descending so the result is
// stable across calls.
func (r *AccessTokenRepository) GetActive() (*models.AccessToken, error) {
	token := &models.AccessToken{}
	err := r.db.QueryRow(`
		SELECT id, name, token, created_at
		FROM api_tokens ORDER BY created_at DESC, id DESC LIMIT 1
	`).Scan(&token.ID, &token.Name, &token.Token, &token.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return token, nil
}

func (r *AccessTokenRepository) List() ([]*models.AccessToken, error) {
	rows, err := r.db.Query(`
		SELECT id, name, token, created_at
		FROM api_tokens ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []*models.AccessToken
	for rows.Next() {
		var t models.AccessToken
		if err := rows.Scan(&t.ID, &t.Name, &t.Token, &t.CreatedAt); err != nil {
			return nil, err
		}
		tokens = append(tokens, &t)
	}
	return tokens, rows.Err()
}

func (r *AccessTokenRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM api_tokens WHERE id = ?`, id)
	return err
}
