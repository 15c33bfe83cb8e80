package soundtrack

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

func (r *Repository) Create(song *Song) error {
	if song.ID == "" {
		song.ID = "song_" + uuid.New().String()
	}
	song.CreatedAt = time.Now().Unix()

	_, err := r.db.Exec(`
		INSERT INTO songs (id, title, artist, suggested_by, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, song.ID, song.Title, song.Artist, song.SuggestedBy, song.CreatedAt)
	return err
}

func (r *Repository) List() ([]*Song, error) {
	rows, err := r.db.Query(`
		SELECT id, title, artist, suggested_by, created_at
		FROM songs ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []*Song
	for rows.Next() {
		var s Song
		if err := rows.Scan(&s.ID, &s.Title, &s.Artist, &s.SuggestedBy, &s.CreatedAt); err != nil {
			return nil, err
		}
		songs = append(songs, &s)
	}
	return songs, rows.Err()
}

func (r *Repository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM songs WHERE id = ?`, id)
	return err
}
