package auth

import (
	"database/sql"
	"fmt"

	"github.com/assetdesk/asset-management/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetCredentialsForEmail(email string) (string, int64, string, error) {
	var passwordHash string
	var userID int64
	var role string
	query := `SELECT id, password_hash, role FROM users WHERE email = ?`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash, &role); err != nil {
		if err == sql.ErrNoRows {
			return "", 0, "", fmt.Errorf("user not found")
		}
		return "", 0, "", err
	}
	return passwordHash, userID, role, nil
}

func (r *Repository) GetUserByID(userID int64) (*auth.User, error) {
	var user auth.User

	query := `SELECT id, email, role FROM users WHERE id = ?`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&user.ID, &user.Email, &user.Role); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}

	return &user, nil
}
