package service

import (
	"context"
	"fmt"

	"github.com/Dan9191/user-service/internal/models"
	"github.com/Dan9191/user-service/internal/repository"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost used for every stored password
const PasswordCost = bcrypt.DefaultCost

// MaxPasswordBytes is the longest input bcrypt accepts; longer passwords are
// truncated to this length before hashing.
const MaxPasswordBytes = 72

// UserStore is the persistence contract the service relies on
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (string, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, user *models.User) (*models.User, error)
	DeleteUser(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Service handles business logic
type Service struct {
	repo UserStore
	log  *logrus.Logger
}

// NewService initializes a new service
func NewService(repo UserStore, log *logrus.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func hashPassword(password string) (string, error) {
	raw := []byte(password)
	if len(raw) > MaxPasswordBytes {
		raw = raw[:MaxPasswordBytes]
	}
	hashed, err := bcrypt.GenerateFromPassword(raw, PasswordCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CreateUser hashes the password and stores a new user, returning its id
func (s *Service) CreateUser(ctx context.Context, candidate *models.User) (string, error) {
	hashed, err := hashPassword(candidate.Password)
	if err != nil {
		return "", err
	}

	user := &models.User{
		Name:     candidate.Name,
		Email:    candidate.Email,
		Password: hashed,
	}
	id, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return "", err
	}

	s.log.Infof("User created: %s (%s)", id, user.Email)
	return id, nil
}

// GetUser retrieves a user by id
func (s *Service) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetUser(ctx, id)
}

// UpdateUser applies name, email and password to an existing user.
// A non-empty password is hashed before it reaches the store, once the id
// is known to be well formed.
func (s *Service) UpdateUser(ctx context.Context, id string, candidate *models.User) (*models.User, error) {
	if _, err := repository.ParseID(id); err != nil {
		return nil, err
	}

	user := &models.User{
		Name:  candidate.Name,
		Email: candidate.Email,
	}
	if candidate.Password != "" {
		hashed, err := hashPassword(candidate.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	updated, err := s.repo.UpdateUser(ctx, id, user)
	if err != nil {
		return nil, err
	}

	s.log.Infof("User updated: %s", id)
	return updated, nil
}

// DeleteUser removes a user and returns its final state
func (s *Service) DeleteUser(ctx context.Context, id string) (*models.User, error) {
	deleted, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Infof("User deleted: %s", id)
	return deleted, nil
}

// ListUsers returns every stored user
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.ListUsers(ctx)
}
