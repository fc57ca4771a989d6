package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/ilumeo/timeclock/internal/apperrors"
	"github.com/ilumeo/timeclock/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (id, name, email, user_code)
		VALUES (?, ?, ?, ?)
		RETURNING created_at
	`

	err := r.db.QueryRow(query, user.ID, user.Name, user.Email, user.UserCode).Scan(&user.CreatedAt)
	if isUniqueViolation(err) {
		return nil, apperrors.Conflict("a user with this email or access code already exists")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(id string) (*models.User, error) {
	return r.getBy("id", id)
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	return r.getBy("email", email)
}

func (r *UserRepository) GetByCode(code string) (*models.User, error) {
	return r.getBy("user_code", code)
}

// getBy fetches one user by a fixed column. A missing row is (nil, nil);
// deciding whether that is an error belongs to the service layer.
func (r *UserRepository) getBy(column, value string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, name, email, user_code, created_at
		FROM users
		WHERE %s = ?
	`, column)

	var user models.User
	err := r.db.QueryRow(query, value).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.UserCode,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}

	return &user, nil
}

func (r *UserRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("user not found")
	}

	return nil
}

// isUniqueViolation reports whether err is a sqlite unique constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
