package services

import (
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/hourglass/timesheet/internal/models"
	"github.com/hourglass/timesheet/internal/repositories"
	"github.com/hourglass/timesheet/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned on a failed login; it deliberately does
// not say whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

const resetCodeTTL = 10 * time.Minute

// Mailer delivers password reset codes.
type Mailer interface {
	SendPasswordResetCode(to, code string) error
}

type UserService struct {
	userRepo *repositories.UserRepository
	mailer   Mailer
	now      func() time.Time
}

func NewUserService(userRepo *repositories.UserRepository, mailer Mailer) *UserService {
	return &UserService{
		userRepo: userRepo,
		mailer:   mailer,
		now:      time.Now,
	}
}

type RegisterInput struct {
	Name       string `json:"name"`
	EmployeeID string `json:"employee_id"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
}

// Register creates a new user with a bcrypt-hashed password
func (s *UserService) Register(input RegisterInput) (*models.User, error) {
	if len(input.Password) < 6 {
		return nil, &models.ValidationError{Field: "password", Message: "Password must be at least 6 characters"}
	}

	user := &models.User{
		Name:       strings.TrimSpace(input.Name),
		EmployeeID: strings.TrimSpace(input.EmployeeID),
		Email:      strings.ToLower(strings.TrimSpace(input.Email)),
		Role:       input.Role,
	}
	if user.Role == "" {
		user.Role = models.RoleEmployee
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return nil, &models.ConflictError{Message: "User already exists"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)

	if err := s.userRepo.Create(user); err != nil {
		return nil, &models.StorageError{Op: "create user", Err: err}
	}

	return user, nil
}

// Authenticate verifies email/password and returns the matching user
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, &models.StorageError{Op: "get user", Err: err}
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &models.NotFoundError{Resource: "user"}
		}
		return nil, &models.StorageError{Op: "get user", Err: err}
	}
	return user, nil
}

// ListUsers retrieves all users
func (s *UserService) ListUsers() ([]*models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, &models.StorageError{Op: "list users", Err: err}
	}
	return users, nil
}

// ForgotPassword generates a six-digit reset code, stores it with a short
// expiry and mails it to the user.
func (s *UserService) ForgotPassword(email string) error {
	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.NotFoundError{Resource: "user"}
		}
		return &models.StorageError{Op: "get user", Err: err}
	}

	code, err := generateResetCode()
	if err != nil {
		return err
	}
	expiry := s.now().Add(resetCodeTTL)

	user.ResetCode = &code
	user.ResetCodeExpiry = &expiry
	if err := s.userRepo.Update(user); err != nil {
		return &models.StorageError{Op: "store reset code", Err: err}
	}

	if err := s.mailer.SendPasswordResetCode(user.Email, code); err != nil {
		logger.WithError(err).WithField("email", user.Email).Error("failed to send reset code")
		return err
	}

	return nil
}

// VerifyResetCode checks the code sent to the user's email
func (s *UserService) VerifyResetCode(email, code string) error {
	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.NotFoundError{Resource: "user"}
		}
		return &models.StorageError{Op: "get user", Err: err}
	}

	return s.checkResetCode(user, code)
}

// ResetPassword sets a new password after verifying the reset code
func (s *UserService) ResetPassword(email, code, newPassword string) error {
	if len(newPassword) < 6 {
		return &models.ValidationError{Field: "password", Message: "Password must be at least 6 characters"}
	}

	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.NotFoundError{Resource: "user"}
		}
		return &models.StorageError{Op: "get user", Err: err}
	}

	if err := s.checkResetCode(user, code); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	user.ResetCode = nil
	user.ResetCodeExpiry = nil
	if err := s.userRepo.Update(user); err != nil {
		return &models.StorageError{Op: "update password", Err: err}
	}

	return nil
}

func (s *UserService) checkResetCode(user *models.User, code string) error {
	if user.ResetCode == nil || user.ResetCodeExpiry == nil ||
		*user.ResetCode != code || s.now().After(*user.ResetCodeExpiry) {
		return &models.ValidationError{Field: "code", Message: "Invalid or expired code"}
	}
	return nil
}

func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
