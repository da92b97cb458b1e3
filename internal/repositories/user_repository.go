package repositories

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/hourglass/timesheet/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Create creates a new user
func (r *UserRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (id, name, employee_id, email, password_hash, role)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	user.ID = uuid.New()

	_, err := r.db.Exec(query,
		user.ID.String(),
		user.Name,
		user.EmployeeID,
		user.Email,
		user.PasswordHash,
		user.Role,
	)
	return err
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	query := selectUser + ` WHERE id = ?`
	return scanUser(r.db.QueryRow(query, id))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := selectUser + ` WHERE email = ?`
	return scanUser(r.db.QueryRow(query, email))
}

// List retrieves all users ordered by name
func (r *UserRepository) List() ([]*models.User, error) {
	query := selectUser + ` ORDER BY name`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// Update updates a user's mutable fields
func (r *UserRepository) Update(user *models.User) error {
	query := `
		UPDATE users
		SET name = ?, email = ?, role = ?, password_hash = ?,
		    reset_code = ?, reset_code_expiry = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		user.Name,
		user.Email,
		user.Role,
		user.PasswordHash,
		user.ResetCode,
		user.ResetCodeExpiry,
		user.ID.String(),
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

const selectUser = `
	SELECT id, name, employee_id, email, password_hash, role,
	       reset_code, reset_code_expiry, created_at, updated_at
	FROM users
`

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var id string
	err := row.Scan(
		&id,
		&user.Name,
		&user.EmployeeID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.ResetCode,
		&user.ResetCodeExpiry,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	return user, nil
}
