package models

import "go.mongodb.org/mongo-driver/v2/bson"

// User represents a user document in the users collection
type User struct {
	ID       *bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name     string         `json:"name" bson:"name"`
	Email    string         `json:"email" bson:"email"`
	Password string         `json:"password" bson:"password"` // bcrypt hash once stored
}

// HasID reports whether the store has assigned an identifier
func (u *User) HasID() bool {
	return u != nil && u.ID != nil && !u.ID.IsZero()
}

// UserInput is the request body for create and update; any client id is dropped
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUser builds a candidate record without an identifier
func (in UserInput) ToUser() *User {
	return &User{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
	}
}

// InsertResult acknowledges a successful insert
type InsertResult struct {
	InsertedID string `json:"insertedId"`
}
