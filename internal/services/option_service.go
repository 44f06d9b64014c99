package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spkcd/smart-bulk-password-reset/internal/db"
)

// ErrOptionNotFound is returned when a named option has never been set.
var ErrOptionNotFound = errors.New("option not found")

// IOptionService is a key-value settings store: each named option holds one
// arbitrary BSON-serializable value. The template list and the default
// subject/body overrides live here.
type IOptionService interface {
	Get(ctx context.Context, name string, out interface{}) error
	GetString(ctx context.Context, name, defaultValue string) string
	Set(ctx context.Context, name string, value interface{}) error
	Delete(ctx context.Context, name string) error
}

const optionsCollection = "options"

// optionService implements IOptionService on top of MongoDB.
type optionService struct {
	db *mongo.Database
}

// NewOptionService creates a new OptionService.
func NewOptionService(database *mongo.Database) IOptionService {
	return &optionService{db: database}
}

type optionDocument struct {
	Name  string        `bson:"name"`
	Value bson.RawValue `bson:"value"`
}

// Get fetches a named option and decodes its value into out.
// Returns ErrOptionNotFound if the option has never been set.
func (s *optionService) Get(ctx context.Context, name string, out interface{}) error {
	collection := s.db.Collection(optionsCollection)

	var doc optionDocument
	err := collection.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrOptionNotFound
		}
		return fmt.Errorf("error reading option %q: %w", name, err)
	}

	if err := doc.Value.Unmarshal(out); err != nil {
		return fmt.Errorf("error decoding option %q: %w", name, err)
	}
	return nil
}

// GetString fetches a string option, falling back to defaultValue when the
// option is absent or unreadable.
func (s *optionService) GetString(ctx context.Context, name, defaultValue string) string {
	var value string
	if err := s.Get(ctx, name, &value); err != nil {
		return defaultValue
	}
	return value
}

// Set upserts a named option, replacing the whole stored value. Concurrent
// first writes can race on the unique name index, so the upsert is retried.
func (s *optionService) Set(ctx context.Context, name string, value interface{}) error {
	collection := s.db.Collection(optionsCollection)
	filter := bson.M{"name": name}
	update := bson.M{
		"$set": bson.M{
			"name":  name,
			"value": value,
		},
	}
	opts := options.Update().SetUpsert(true)

	err := db.Try(func() error {
		_, err := collection.UpdateOne(ctx, filter, update, opts)
		return err
	})
	if err != nil {
		return fmt.Errorf("error upserting option %q: %w", name, err)
	}
	return nil
}

// Delete removes a named option. Deleting an absent option is not an error.
func (s *optionService) Delete(ctx context.Context, name string) error {
	collection := s.db.Collection(optionsCollection)
	if _, err := collection.DeleteOne(ctx, bson.M{"name": name}); err != nil {
		return fmt.Errorf("error deleting option %q: %w", name, err)
	}
	return nil
}
