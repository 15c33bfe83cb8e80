package gifts

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(gift *ReceivedGift) error {
	if gift.ID == "" {
		gift.ID = "gift_" + uuid.New().String()
	}
	gift.CreatedAt = time.Now().Unix()

	_, err := r.db.Exec(`
		INSERT INTO received_gifts (id, gift_name, giver_name, is_anonymous, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, gift.ID, gift.GiftName, gift.GiverName, gift.IsAnonymous, gift.CreatedAt)
	return err
}

func (r *Repository) List() ([]*ReceivedGift, error) {
	rows, err := r.db.Query(`
		SELECT id, gift_name, giver_name, is_anonymous, created_at
		FROM received_gifts ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var received []*ReceivedGift
	for rows.Next() {
		var g ReceivedGift
		if err := rows.Scan(&g.ID, &g.GiftName, &g.GiverName, &g.IsAnonymous, &g.CreatedAt); err != nil {
			return nil, err
		}
		received = append(received, &g)
	}
	return received, rows.Err()
}

func (r *Repository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM received_gifts WHERE id = ?`, id)
	return err
}
