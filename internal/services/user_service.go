package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"agrilink-backend/internal/apperr"
	"agrilink-backend/internal/models"
	"agrilink-backend/internal/utils"
)

// UserService handles registration, authentication and profile management
type UserService struct {
	db *sql.DB
}

func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new user account. Emails are unique; the role defaults
// to farmer and only farmer or admin are accepted.
func (s *UserService) Register(req *models.UserRegistration) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperr.InvalidInput(err.Error())
	}

	role := models.UserRole(strings.ToLower(strings.TrimSpace(req.Role)))
	if role == "" {
		role = models.UserRoleFarmer
	}
	if !role.IsValid() {
		return nil, apperr.InvalidInput("role must be farmer or admin")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var exists int
	err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", email).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists > 0 {
		return nil, apperr.Conflict("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New().String(),
		Name:         utils.SanitizeString(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if p := strings.TrimSpace(req.Phone); p != "" {
		user.Phone = &p
	}

	_, err = s.db.Exec(`
		INSERT INTO users (id, name, email, password_hash, role, phone, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.Phone,
		user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies credentials and returns the user
func (s *UserService) Authenticate(req *models.UserLogin) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperr.InvalidInput(err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.getByEmail(email)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.Unauthenticated("invalid email or password")
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperr.Unauthenticated("invalid email or password")
	}
	return user, nil
}

// GetByID fetches a user by id
func (s *UserService) GetByID(id string) (*models.User, error) {
	return s.scanUser(s.db.QueryRow(`
		SELECT id, name, email, password_hash, role, phone, created_at, updated_at
		FROM users WHERE id = ?`, id))
}

func (s *UserService) getByEmail(email string) (*models.User, error) {
	return s.scanUser(s.db.QueryRow(`
		SELECT id, name, email, password_hash, role, phone, created_at, updated_at
		FROM users WHERE email = ?`, email))
}

// List returns all users
func (s *UserService) List() ([]models.User, error) {
	rows, err := s.db.Query(`
		SELECT id, name, email, password_hash, role, phone, created_at, updated_at
		FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		var phone sql.NullString
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
			&phone, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		if phone.Valid {
			u.Phone = &phone.String
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateProfile applies the provided fields to the user's profile
func (s *UserService) UpdateProfile(id string, req *models.UserProfileUpdate) (*models.User, error) {
	setClauses := []string{}
	args := []interface{}{}

	if req.Name != nil {
		name := utils.SanitizeString(*req.Name)
		if name == "" {
			return nil, apperr.InvalidInput("name cannot be empty")
		}
		setClauses = append(setClauses, "name = ?")
		args = append(args, name)
	}
	if req.Phone != nil {
		setClauses = append(setClauses, "phone = ?")
		args = append(args, *req.Phone)
	}
	if req.Password != nil {
		if len(*req.Password) < 6 {
			return nil, apperr.InvalidInput("password must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		setClauses = append(setClauses, "password_hash = ?")
		args = append(args, string(hash))
	}

	if len(setClauses) == 0 {
		return s.GetByID(id)
	}

	setClauses = append(setClauses, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	result, err := s.db.Exec(
		"UPDATE users SET "+strings.Join(setClauses, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, apperr.NotFound("user not found")
	}

	return s.GetByID(id)
}

// Delete removes a user account
func (s *UserService) Delete(id string) error {
	result, err := s.db.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (s *UserService) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var phone sql.NullString
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&phone, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if phone.Valid {
		u.Phone = &phone.String
	}
	return &u, nil
}
