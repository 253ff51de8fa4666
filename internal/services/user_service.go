package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arora427/HomeVerse/internal/auth"
	"github.com/arora427/HomeVerse/internal/db"
	"github.com/arora427/HomeVerse/internal/models"
)

// IUserService defines the interface for user-related operations.
// This allows for easier mocking in tests.
type IUserService interface {
	Register(ctx context.Context, params RegisterParams) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	FindByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
}

// RegisterParams contains user registration data supplied by callers.
type RegisterParams struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

const usersCollection = "users"

// userService implements IUserService.
type userService struct {
	db *mongo.Database
}

// NewUserService creates a new UserService.
func NewUserService(db *mongo.Database) IUserService {
	return &userService{db: db}
}

// Register validates the input, hashes the password and creates the user.
// Returns ErrDuplicateEmail when the unique email index rejects the insert.
func (s *userService) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	fields := fieldErrors{}
	if strings.TrimSpace(params.Name) == "" {
		fields.add("name", "Name is required")
	}
	email := normalizeEmail(params.Email)
	if email == "" {
		fields.add("email", "Email is required")
	} else if !isValidEmail(email) {
		fields.add("email", "Valid email is required")
	}
	if strings.TrimSpace(params.Phone) == "" {
		fields.add("phone", "Phone is required")
	}
	if len(params.Password) < 6 {
		fields.add("password", "Password must be at least 6 characters")
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           primitive.NewObjectID(),
		Name:         strings.TrimSpace(params.Name),
		Email:        email,
		Phone:        strings.TrimSpace(params.Phone),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.db.Collection(usersCollection).InsertOne(ctx, user); err != nil {
		if db.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("error creating user %s: %w", email, err)
	}

	return user, nil
}

// Login verifies the credentials and returns the matching user.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *userService) Login(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	filter := bson.M{"email": normalizeEmail(email)}

	err := s.db.Collection(usersCollection).FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// FindByID retrieves a user by their ID.
func (s *userService) FindByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	var user models.User

	err := s.db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding user by ID %s: %w", userID.Hex(), err)
	}
	return &user, nil
}
