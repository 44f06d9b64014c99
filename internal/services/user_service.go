package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spkcd/smart-bulk-password-reset/internal/auth"
	"github.com/spkcd/smart-bulk-password-reset/internal/models"
	"github.com/spkcd/smart-bulk-password-reset/internal/utils"
)

const usersCollection = "users"

// UserSummary is the trimmed user shape returned to the selection UI.
type UserSummary struct {
	ID    utils.SixID `bson:"_id" json:"id"`
	Login string      `bson:"login" json:"login"`
	Email string      `bson:"email" json:"email"`
}

// IUserService defines the interface for reading the user directory and for
// the one mutation this service is allowed to make: replacing a password.
type IUserService interface {
	FindByID(ctx context.Context, id utils.SixID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ListByRole(ctx context.Context, role string) ([]UserSummary, error)
	ListRoles(ctx context.Context) ([]string, error)
	SetPassword(ctx context.Context, id utils.SixID, newPassword string) error
}

// userService implements IUserService.
type userService struct {
	db *mongo.Database
}

// NewUserService creates a new UserService.
func NewUserService(database *mongo.Database) IUserService {
	return &userService{db: database}
}

// FindByID retrieves a user by their ID. Soft-deleted users are treated as
// absent. Returns mongo.ErrNoDocuments when there is no match.
func (s *userService) FindByID(ctx context.Context, id utils.SixID) (*models.User, error) {
	collection := s.db.Collection(usersCollection)

	var user models.User
	err := collection.FindOne(ctx, bson.M{"_id": id, "deleted": false}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("error finding user by ID: %w", err)
	}
	return &user, nil
}

// FindByEmail retrieves a user by email address.
// Returns mongo.ErrNoDocuments when there is no match.
func (s *userService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	collection := s.db.Collection(usersCollection)

	var user models.User
	err := collection.FindOne(ctx, bson.M{"email": email, "deleted": false}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	return &user, nil
}

// ListByRole returns the users holding the given role, ordered by login.
// An unknown role yields an empty list, not an error.
func (s *userService) ListByRole(ctx context.Context, role string) ([]UserSummary, error) {
	collection := s.db.Collection(usersCollection)

	opts := options.Find().
		SetProjection(bson.M{"_id": 1, "login": 1, "email": 1}).
		SetSort(bson.D{{Key: "login", Value: 1}})

	cursor, err := collection.Find(ctx, bson.M{"role": role, "deleted": false}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing users by role: %w", err)
	}
	defer cursor.Close(ctx)

	users := []UserSummary{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("error decoding users: %w", err)
	}
	return users, nil
}

// ListRoles returns the distinct roles present in the directory, sorted.
func (s *userService) ListRoles(ctx context.Context) ([]string, error) {
	collection := s.db.Collection(usersCollection)

	values, err := collection.Distinct(ctx, "role", bson.M{"deleted": false})
	if err != nil {
		return nil, fmt.Errorf("error listing roles: %w", err)
	}

	roles := make([]string, 0, len(values))
	for _, v := range values {
		if role, ok := v.(string); ok && role != "" {
			roles = append(roles, role)
		}
	}
	sort.Strings(roles)
	return roles, nil
}

// SetPassword hashes newPassword and stores it on the user.
// Returns mongo.ErrNoDocuments when the user does not exist.
func (s *userService) SetPassword(ctx context.Context, id utils.SixID, newPassword string) error {
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	collection := s.db.Collection(usersCollection)
	update := bson.M{
		"$set": bson.M{
			"password":   hash,
			"updated_at": time.Now().UTC(),
		},
	}

	result, err := collection.UpdateOne(ctx, bson.M{"_id": id, "deleted": false}, update)
	if err != nil {
		return fmt.Errorf("error setting password: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
