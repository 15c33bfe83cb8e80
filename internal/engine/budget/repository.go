package budget

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

func (r *Repository) Create(item *Item) error {
	if item.ID == "" {
		item.ID = "item_" + uuid.New().String()
	}
	item.CreatedAt = time.Now().Unix()

	_, err := r.db.Exec(`
		INSERT INTO budget_items (id, description, supplier, estimated_cost, actual_cost, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, item.ID, item.Description, item.Supplier, item.EstimatedCost, item.ActualCost, item.Status, item.CreatedAt)
	return err
}

func (r *Repository) GetByID(id string) (*Item, error) {
	item := &Item{}
	err := r.db.QueryRow(`
		SELECT id, description, supplier, estimated_cost, actual_cost, status, created_at
		FROM budget_items WHERE id = ?
	`, id).Scan(&item.ID, &item.Description, &item.Supplier, &item.EstimatedCost, &item.ActualCost, &item.Status, &item.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

func (r *Repository) List() ([]*Item, error) {
	rows, err := r.db.Query(`
		SELECT id, description, supplier, estimated_cost, actual_cost, status, created_at
		FROM budget_items ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		var i Item
		if err := rows.Scan(&i.ID, &i.Description, &i.Supplier, &i.EstimatedCost, &i.ActualCost, &i.Status, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &i)
	}
	return items, rows.Err()
}

func (r *Repository) Update(item *Item) error {
	_, err := r.db.Exec(`
		UPDATE budget_items SET description = ?, supplier = ?, estimated_cost = ?, actual_cost = ?, status = ? WHERE id = ?
	`, item.Description, item.Supplier, item.EstimatedCost, item.ActualCost, item.Status, item.ID)
	return err
}

func (r *Repository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM budget_items WHERE id = ?`, id)
	return err
}
