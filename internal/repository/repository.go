package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dan9191/user-service/internal/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Repository provides database operations on the users collection
type Repository struct {
	client *mongo.Client
	col    *mongo.Collection
}

// NewRepository initializes a new repository
func NewRepository(client *mongo.Client, database, collection string) *Repository {
	return &Repository{
		client: client,
		col:    client.Database(database).Collection(collection),
	}
}

// ParseID converts a hex string into an ObjectID
func ParseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

// CreateUser inserts a new user document and returns the assigned id
func (r *Repository) CreateUser(ctx context.Context, user *models.User) (string, error) {
	doc := models.User{
		Name:     user.Name,
		Email:    user.Email,
		Password: user.Password,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", storeErr("create user", err)
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", storeErr("create user", fmt.Errorf("unexpected inserted id type %T", res.InsertedID))
	}
	user.ID = &oid
	return oid.Hex(), nil
}

// GetUser retrieves a user by id
func (r *Repository) GetUser(ctx context.Context, id string) (*models.User, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	user := &models.User{}
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeErr("get user", err)
	}
	return user, nil
}

// UpdateUser sets name, email and password on an existing user and returns
// the document as it is after the update. An empty password is left as is.
func (r *Repository) UpdateUser(ctx context.Context, id string, user *models.User) (*models.User, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	set := bson.M{"name": user.Name, "email": user.Email}
	if user.Password != "" {
		set["password"] = user.Password
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	updated := &models.User{}
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeErr("update user", err)
	}
	return updated, nil
}

// DeleteUser removes a user and returns its last stored state
func (r *Repository) DeleteUser(ctx context.Context, id string) (*models.User, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	deleted := &models.User{}
	err = r.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(deleted)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeErr("delete user", err)
	}
	return deleted, nil
}

// ListUsers returns every user in the collection
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := r.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, storeErr("list users", err)
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, storeErr("list users", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// Ping checks that the primary is reachable
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx, readpref.Primary()); err != nil {
		return storeErr("ping database", err)
	}
	return nil
}
