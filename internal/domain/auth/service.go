package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"leavehub/internal/domain/directory"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveAccount    = errors.New("account is deactivated")
)

const (
	TokenTTL = 12 * time.Hour
	resetTTL = time.Hour
)

type Service struct {
	Store     *Store
	Directory *directory.Store
	JWTSecret string
}

func NewService(store *Store, directoryStore *directory.Store, jwtSecret string) *Service {
	return &Service{Store: store, Directory: directoryStore, JWTSecret: jwtSecret}
}

// Login verifies credentials and issues a bearer token for the session.
func (s *Service) Login(ctx context.Context, email, password string) (string, directory.Employee, error) {
	employee, err := s.Directory.GetByEmail(ctx, email)
	if errors.Is(err, directory.ErrNotFound) {
		return "", directory.Employee{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", directory.Employee{}, err
	}
	if !employee.IsActive {
		return "", directory.Employee{}, ErrInactiveAccount
	}

	hash, err := s.Directory.PasswordHash(ctx, employee.ID)
	if err != nil {
		return "", directory.Employee{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return "", directory.Employee{}, ErrInvalidCredentials
	}

	token, err := GenerateToken(s.JWTSecret, Identity{
		EmployeeID: employee.ID,
		Email:      employee.Email,
		IsAdmin:    employee.IsAdmin,
	}, TokenTTL)
	if err != nil {
		return "", directory.Employee{}, err
	}
	return token, employee, nil
}

// RequestReset issues a one-hour reset token. The raw token is returned to
// the caller (mailed by an out-of-scope delivery path); only its hash is stored.
func (s *Service) RequestReset(ctx context.Context, email string) (string, error) {
	employee, err := s.Directory.GetByEmail(ctx, email)
	if errors.Is(err, directory.ErrNotFound) {
		// Do not reveal whether the address exists.
		return "", nil
	}
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	if err := s.Store.CreatePasswordReset(ctx, employee.ID, HashToken(token), time.Now().Add(resetTTL)); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	employeeID, err := s.Store.PasswordResetEmployeeID(ctx, HashToken(token))
	if err != nil {
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Directory.UpdatePasswordHash(ctx, employeeID, hash); err != nil {
		return err
	}
	return s.Store.MarkPasswordResetUsed(ctx, HashToken(token))
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
