// Package servicetest provides an in-memory UserStore for tests.
package servicetest

import (
	"context"
	"sync"

	"github.com/Dan9191/user-service/internal/models"
	"github.com/Dan9191/user-service/internal/repository"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryStore mimics the repository contract: ids are ObjectID hex strings,
// malformed ids yield repository.ErrInvalidID and misses repository.ErrNotFound.
// Err, when set, is returned by every operation.
type MemoryStore struct {
	mu    sync.Mutex
	order []bson.ObjectID
	users map[bson.ObjectID]models.User

	Err   error
	Calls int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[bson.ObjectID]models.User)}
}

func (m *MemoryStore) begin() error {
	m.Calls++
	return m.Err
}

func (m *MemoryStore) CreateUser(_ context.Context, user *models.User) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(); err != nil {
		return "", err
	}
	oid := bson.NewObjectID()
	doc := *user
	doc.ID = &oid
	m.users[oid] = doc
	m.order = append(m.order, oid)
	user.ID = &oid
	return oid.Hex(), nil
}

func (m *MemoryStore) GetUser(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(); err != nil {
		return nil, err
	}
	oid, err := repository.ParseID(id)
	if err != nil {
		return nil, err
	}
	u, ok := m.users[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m *MemoryStore) UpdateUser(_ context.Context, id string, user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(); err != nil {
		return nil, err
	}
	oid, err := repository.ParseID(id)
	if err != nil {
		return nil, err
	}
	u, ok := m.users[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Name = user.Name
	u.Email = user.Email
	if user.Password != "" {
		u.Password = user.Password
	}
	m.users[oid] = u
	return &u, nil
}

func (m *MemoryStore) DeleteUser(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(); err != nil {
		return nil, err
	}
	oid, err := repository.ParseID(id)
	if err != nil {
		return nil, err
	}
	u, ok := m.users[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(m.users, oid)
	return &u, nil
}

func (m *MemoryStore) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(); err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(m.users))
	for _, oid := range m.order {
		if u, ok := m.users[oid]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}
