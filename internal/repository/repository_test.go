package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dan9191/user-service/internal/models"
	tc "github.com/Dan9191/user-service/internal/testcontainers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func TestParseID(t *testing.T) {
	oid := bson.NewObjectID()

	got, err := ParseID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, got)

	for _, bad := range []string{"", "abc", "zzzzzzzzzzzzzzzzzzzzzzzz", oid.Hex() + "00"} {
		_, err := ParseID(bad)
		assert.ErrorIs(t, err, ErrInvalidID, "id %q", bad)
	}
}

func TestStoreErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := storeErr("get user", cause)

	var se *StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "get user", se.Op)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to get user: connection reset", err.Error())
}

type RepositoryTestSuite struct {
	suite.Suite
	container *tc.MongoContainer
	client    *mongo.Client
	repo      *Repository
}

func TestRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping MongoDB integration tests in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) SetupSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := tc.NewMongoContainer(ctx)
	if err != nil {
		s.T().Skipf("MongoDB container unavailable: %v", err)
	}
	s.container = container

	client, err := mongo.Connect(options.Client().ApplyURI(container.URI()))
	s.Require().NoError(err)
	s.client = client
	s.repo = NewRepository(client, "user_service_test", "users")
	s.Require().NoError(s.repo.Ping(ctx))
}

func (s *RepositoryTestSuite) TearDownSuite() {
	ctx := context.Background()
	if s.client != nil {
		_ = s.client.Disconnect(ctx)
	}
	if s.container != nil {
		_ = s.container.Terminate(ctx)
	}
}

func (s *RepositoryTestSuite) SetupTest() {
	s.Require().NoError(s.repo.col.Drop(context.Background()))
}

func (s *RepositoryTestSuite) create(name string) string {
	id, err := s.repo.CreateUser(context.Background(), &models.User{
		Name:     name,
		Email:    name + "@x.com",
		Password: "hash-" + name,
	})
	s.Require().NoError(err)
	return id
}

func (s *RepositoryTestSuite) TestCreateAndGet() {
	ctx := context.Background()
	user := &models.User{Name: "Ana", Email: "ana@x.com", Password: "hashed"}

	id, err := s.repo.CreateUser(ctx, user)
	s.Require().NoError(err)
	s.Len(id, 24)
	s.Require().True(user.HasID())
	s.Equal(id, user.ID.Hex())

	got, err := s.repo.GetUser(ctx, id)
	s.Require().NoError(err)
	s.Equal("Ana", got.Name)
	s.Equal("ana@x.com", got.Email)
	s.Equal("hashed", got.Password)
	s.Equal(id, got.ID.Hex())
}

func (s *RepositoryTestSuite) TestCreateIgnoresCandidateID() {
	preset := bson.NewObjectID()
	user := &models.User{ID: &preset, Name: "Bo"}

	id, err := s.repo.CreateUser(context.Background(), user)
	s.Require().NoError(err)
	s.NotEqual(preset.Hex(), id)
}

func (s *RepositoryTestSuite) TestGetErrors() {
	ctx := context.Background()

	_, err := s.repo.GetUser(ctx, "not-an-id")
	s.ErrorIs(err, ErrInvalidID)

	_, err = s.repo.GetUser(ctx, bson.NewObjectID().Hex())
	s.ErrorIs(err, ErrNotFound)
}

func (s *RepositoryTestSuite) TestUpdate() {
	ctx := context.Background()
	id := s.create("ana")

	updated, err := s.repo.UpdateUser(ctx, id, &models.User{Name: "Ana Maria", Email: "am@x.com", Password: "new-hash"})
	s.Require().NoError(err)
	s.Equal(id, updated.ID.Hex())
	s.Equal("Ana Maria", updated.Name)
	s.Equal("am@x.com", updated.Email)
	s.Equal("new-hash", updated.Password)
}

func (s *RepositoryTestSuite) TestUpdateKeepsPasswordWhenEmpty() {
	ctx := context.Background()
	id := s.create("ana")

	updated, err := s.repo.UpdateUser(ctx, id, &models.User{Name: "Ana", Email: "ana@y.com"})
	s.Require().NoError(err)
	s.Equal("hash-ana", updated.Password)
	s.Equal("ana@y.com", updated.Email)
}

func (s *RepositoryTestSuite) TestUpdateMissing() {
	ctx := context.Background()
	missing := bson.NewObjectID().Hex()

	_, err := s.repo.UpdateUser(ctx, missing, &models.User{Name: "ghost"})
	s.ErrorIs(err, ErrNotFound)

	_, err = s.repo.GetUser(ctx, missing)
	s.ErrorIs(err, ErrNotFound, "update must not create documents")

	_, err = s.repo.UpdateUser(ctx, "bad", &models.User{})
	s.ErrorIs(err, ErrInvalidID)
}

func (s *RepositoryTestSuite) TestDelete() {
	ctx := context.Background()
	id := s.create("ana")

	deleted, err := s.repo.DeleteUser(ctx, id)
	s.Require().NoError(err)
	s.True(deleted.HasID())
	s.Equal("ana", deleted.Name)

	_, err = s.repo.GetUser(ctx, id)
	s.ErrorIs(err, ErrNotFound)

	_, err = s.repo.DeleteUser(ctx, id)
	s.ErrorIs(err, ErrNotFound)

	_, err = s.repo.DeleteUser(ctx, "")
	s.ErrorIs(err, ErrInvalidID)
}

func (s *RepositoryTestSuite) TestListUsers() {
	ctx := context.Background()

	users, err := s.repo.ListUsers(ctx)
	s.Require().NoError(err)
	s.NotNil(users)
	s.Empty(users)

	ids := []string{s.create("a"), s.create("b"), s.create("c"), s.create("d")}
	_, err = s.repo.DeleteUser(ctx, ids[1])
	s.Require().NoError(err)

	users, err = s.repo.ListUsers(ctx)
	s.Require().NoError(err)
	s.Len(users, 3)
}

func (s *RepositoryTestSuite) TestPingAfterDisconnect() {
	ctx := context.Background()
	client, err := mongo.Connect(options.Client().ApplyURI(s.container.URI()))
	s.Require().NoError(err)
	repo := NewRepository(client, "user_service_test", "users")
	s.Require().NoError(client.Disconnect(ctx))

	err = repo.Ping(ctx)
	var se *StoreError
	s.ErrorAs(err, &se)
}
