package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ren89/property-listing-app/internal/db"
	"github.com/ren89/property-listing-app/internal/models"
)

// IUserService defines the interface for user-profile operations.
type IUserService interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, id, email, name string) (*models.User, error)
}

const usersCollection = "users"

// ErrEmailTaken is returned when a profile already exists for an email.
var ErrEmailTaken = errors.New("email already in use")

type userService struct {
	db *mongo.Database
}

// NewUserService creates a new UserService.
func NewUserService(db *mongo.Database) IUserService {
	return &userService{db: db}
}

// GetUserByID finds a user profile by ID.
// Returns mongo.ErrNoDocuments when absent.
func (s *userService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	collection := s.db.Collection(usersCollection)

	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("error finding user %s: %w", id, err)
	}
	return &user, nil
}

// GetUserByEmail finds a user profile by email.
func (s *userService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	collection := s.db.Collection(usersCollection)

	err := collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	return &user, nil
}

// CreateUser materialises a profile document for an authenticated account.
// The id is supplied by the caller so that the profile shares the account's
// identity; pass an empty id to have one generated.
func (s *userService) CreateUser(ctx context.Context, id, email, name string) (*models.User, error) {
	collection := s.db.Collection(usersCollection)

	count, err := collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	now := time.Now().UTC()

	var newUser *models.User

	operation := func() error {
		userID := id
		if userID == "" {
			userID = uuid.NewString()
		}
		newUser = &models.User{
			ID:        userID,
			Email:     email,
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
		}
		_, insertErr := collection.InsertOne(ctx, newUser)
		return insertErr
	}

	if err := db.Try(operation); err != nil {
		return nil, fmt.Errorf("failed to insert user after multiple retries: %w", err)
	}

	return newUser, nil
}
