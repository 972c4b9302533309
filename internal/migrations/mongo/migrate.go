package mongo

import (
	"context"
	"fmt"

	guides "sandgrund/internal/guides/repository"
	"sandgrund/internal/migrations/mongo/validators"
	tours "sandgrund/internal/tours/repository"
	users "sandgrund/internal/users/repository"
	"sandgrund/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Collection struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

var (
	ToursIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "year", Value: 1}}, Options: options.Index().SetUnique(true).SetName("year_unique")},
		{Keys: bson.D{{Key: "bookings._id", Value: 1}}, Options: options.Index().SetName("bookings_id")},
	}

	GuidesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("email_unique")},
		{Keys: bson.D{{Key: "fullName", Value: 1}}, Options: options.Index().SetName("full_name")},
	}

	UsersIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("email_unique")},
		{Keys: bson.D{{Key: "resetTokenHash", Value: 1}}, Options: options.Index().SetSparse(true).SetName("reset_token_hash")},
	}
)

// Collections lists everything RunMigration ensures, in creation order.
func Collections() []Collection {
	return []Collection{
		{Name: tours.CollectionName, Indexes: ToursIndexes, Validator: validators.TourValidator},
		{Name: guides.CollectionName, Indexes: GuidesIndexes, Validator: validators.GuideValidator},
		{Name: users.CollectionName, Indexes: UsersIndexes, Validator: validators.UserValidator},
	}
}

// RunMigration is idempotent: existing collections get their validator
// replaced and indexes are created only when missing.
func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	for _, def := range Collections() {
		if err := ensureCollection(ctx, db, def.Name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
		}
		if err := ensureIndexes(ctx, db, def.Name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
		}
	}

	log.Info("All migrations applied successfully")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	created, err := db.Collection(name).Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "indexes", created)
	return nil
}
