package mongo

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bookingsrepo "carrental/internal/bookings/repository"
	carsrepo "carrental/internal/cars/repository"
	"carrental/internal/migrations/mongo/validators"
	usersrepo "carrental/internal/users/repository"
	"carrental/pkg/logger"
	"carrental/pkg/model"
)

//go:embed data/cars.json
var carsSeed []byte

var (
	UsersIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "contactNo", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	CarsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "type", Value: 1}}},
	}

	BookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "userInfo", Value: 1}}},
	}
)

type collectionDef struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

func collections() []collectionDef {
	return []collectionDef{
		{Name: usersrepo.CollectionName, Indexes: UsersIndexes, Validator: validators.UserValidator},
		{Name: carsrepo.CollectionName, Indexes: CarsIndexes, Validator: validators.CarValidator},
		{Name: bookingsrepo.CollectionName, Indexes: BookingsIndexes, Validator: validators.BookingValidator},
	}
}

// RunMigration creates or updates every collection with its schema validator
// and indexes. It is safe to run repeatedly.
func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	for _, def := range collections() {
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
	if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}

// SeedCars inserts the embedded catalog when the Cars collection is empty
// and returns how many cars were inserted.
func SeedCars(ctx context.Context, db *mongo.Database, log *logger.Logger) (int, error) {
	coll := db.Collection(carsrepo.CollectionName)

	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count cars: %w", err)
	}
	if count > 0 {
		log.Info("Car catalog already seeded", "count", count)
		return 0, nil
	}

	cars, err := LoadCarSeed()
	if err != nil {
		return 0, err
	}

	docs := make([]any, 0, len(cars))
	for _, c := range cars {
		docs = append(docs, c)
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return 0, fmt.Errorf("failed to seed cars: %w", err)
	}

	log.Info("Seeded car catalog", "count", len(docs))
	return len(docs), nil
}

// LoadCarSeed parses and checks the embedded catalog.
func LoadCarSeed() ([]*model.Car, error) {
	var cars []*model.Car
	if err := json.Unmarshal(carsSeed, &cars); err != nil {
		return nil, fmt.Errorf("failed to parse car seed: %w", err)
	}
	for i, c := range cars {
		if c.Model == "" || c.Make == "" || c.Image == "" {
			return nil, fmt.Errorf("car seed entry %d is incomplete", i)
		}
		if c.Price < 0 {
			return nil, fmt.Errorf("car seed entry %d has a negative price", i)
		}
		if !model.IsCarType(c.Type) {
			return nil, fmt.Errorf("car seed entry %d has unknown type %q", i, c.Type)
		}
		c.ID = ""
	}
	return cars, nil
}
