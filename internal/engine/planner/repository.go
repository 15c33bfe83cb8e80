package planner

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

func (r *Repository) Create(task *Task) error {
	if task.ID == "" {
		task.ID = "task_" + uuid.New().String()
	}
	task.CreatedAt = time.Now().Unix()
	task.UpdatedAt = task.CreatedAt

	_, err := r.db.Exec(`
		INSERT INTO tasks (id, text, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, task.ID, task.Text, task.Completed, task.CreatedAt, task.UpdatedAt)
	return err
}

func (r *Repository) GetByID(id string) (*Task, error) {
	task := &Task{}
	err := r.db.QueryRow(`
		SELECT id, text, completed, created_at, updated_at FROM tasks WHERE id = ?
	`, id).Scan(&task.ID, &task.Text, &task.Completed, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

func (r *Repository) List() ([]*Task, error) {
	rows, err := r.db.Query(`
		SELECT id, text, completed, created_at, updated_at FROM tasks ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Text, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, &t)
	}
	return tasks, rows.Err()
}

func (r *Repository) SetCompleted(id string, completed bool) error {
	_, err := r.db.Exec(`
		UPDATE tasks SET completed = ?, updated_at = ? WHERE id = ?
	`, completed, time.Now().Unix(), id)
	return err
}

func (r *Repository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	return err
}
