package guests

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

func (r *Repository) Create(guest *Guest) error {
	if guest.ID == "" {
		guest.ID = "guest_" + uuid.New().String()
	}
	guest.CreatedAt = time.Now().Unix()
	guest.UpdatedAt = guest.CreatedAt

	_, err := r.db.Exec(`
		INSERT INTO guests (id, name, status, group_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, guest.ID, guest.Name, guest.Status, guest.GroupName, guest.CreatedAt, guest.UpdatedAt)
	return err
}

func (r *Repository) GetByID(id string) (*Guest, error) {
	guest := &Guest{}
	err := r.db.QueryRow(`
		SELECT id, name, status, group_name, created_at, updated_at
		FROM guests WHERE id = ?
	`, id).Scan(&guest.ID, &guest.Name, &guest.Status, &guest.GroupName, &guest.CreatedAt, &guest.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return guest, nil
}

func (r *Repository) List() ([]*Guest, error) {
	rows, err := r.db.Query(`
		SELECT id, name, status, group_name, created_at, updated_at
		FROM guests ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guests []*Guest
	for rows.Next() {
		var g Guest
		if err := rows.Scan(&g.ID, &g.Name, &g.Status, &g.GroupName, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		guests = append(guests, &g)
	}
	return guests, rows.Err()
}

func (r *Repository) Update(guest *Guest) error {
	guest.UpdatedAt = time.Now().Unix()
	_, err := r.db.Exec(`
		UPDATE guests SET name = ?, status = ?, group_name = ?, updated_at = ? WHERE id = ?
	`, guest.Name, guest.Status, guest.GroupName, guest.UpdatedAt, guest.ID)
	return err
}

func (r *Repository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM guests WHERE id = ?`, id)
	return err
}
