package repositories

import (
	"database/sql"

	"wedplan/internal/platform/models"
)

type WeddingRepository struct {
	db *sql.DB
}

func NewWeddingRepository(db *sql.DB) *WeddingRepository {
	return &WeddingRepository{db: db}
}

func (r *WeddingRepository) Create(wedding *models.Wedding) error {
	_, err := r.db.Exec(`
		INSERT INTO weddings (id, slug, name, db_file_path, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, wedding.ID, wedding.Slug, wedding.Name, wedding.DBFilePath, wedding.CreatedAt, wedding.UpdatedAt)
	return err
}

func (r *WeddingRepository) GetByID(id string) (*models.Wedding, error) {
	wedding := &models.Wedding{}
	err := r.db.QueryRow(`
		SELECT id, slug, name, db_file_path, created_at, updated_at, deleted_at
		FROM weddings WHERE id = ?
	`, id).Scan(&wedding.ID, &wedding.Slug, &wedding.Name, &wedding.DBFilePath, &wedding.CreatedAt, &wedding.UpdatedAt, &wedding.DeletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return wedding, nil
}

func (r *WeddingRepository) GetBySlug(slug string) (*models.Wedding, error) {
	wedding := &models.Wedding{}
	err := r.db.QueryRow(`
		SELECT id, slug, name, db_file_path, created_at, updated_at, deleted_at
		FROM weddings WHERE slug = ?
	`, slug).Scan(&wedding.ID, &wedding.Slug, &wedding.Name, &wedding.DBFilePath, &wedding.CreatedAt, &wedding.UpdatedAt, &wedding.DeletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return wedding, nil
}

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.User) error {
	_, err := r.db.Exec(`
		INSERT INTO users (id, wedding_id, email, password_hash, full_name, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, user.ID, user.WeddingID, user.Email, user.PasswordHash, user.FullName, user.Role, user.CreatedAt, user.UpdatedAt)
	return err
}

func (r *UserRepository) GetByID(id string) (*models.User, error) {
	user := &models.User{}
	var lastLoginAt sql.NullInt64
	err := r.db.QueryRow(`
		SELECT id, wedding_id, email, password_hash, full_name, role, last_login_at, created_at, updated_at
		FROM users WHERE id = ?
	`, id).Scan(&user.ID, &user.WeddingID, &user.Email, &user.PasswordHash, &user.FullName, &user.Role, &lastLoginAt, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if lastLoginAt.Valid {
		user.LastLoginAt = new(int64)
		*user.LastLoginAt = lastLoginAt.Int64
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	user := &models.User{}
	var lastLoginAt sql.NullInt64
	err := r.db.QueryRow(`
		SELECT id, wedding_id, email, password_hash, full_name, role, last_login_at, created_at, updated_at
		FROM users WHERE email = ?
	`, email).Scan(&user.ID, &user.WeddingID, &user.Email, &user.PasswordHash, &user.FullName, &user.Role, &lastLoginAt, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if lastLoginAt.Valid {
		user.LastLoginAt = new(int64)
		*user.LastLoginAt = lastLoginAt.Int64
	}
	return user, nil
}

func (r *UserRepository) UpdateLastLogin(userID string, timestamp int64) error {
	_, err := r.db.Exec(`UPDATE users SET last_login_at = ? WHERE id = ?`, timestamp, userID)
	return err
}
