package repository

import (
	"context"
	"fmt"
	"time"

	bookingserrors "carrental/internal/bookings/errors"
	usersrepo "carrental/internal/users/repository"
	"carrental/pkg/client"
	"carrental/pkg/config"
	"carrental/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CollectionName = "Bookings"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	// FindByUser returns the user's bookings oldest first, each with its
	// owner expanded. A missing owner leaves UserInfo nil.
	FindByUser(ctx context.Context, userID string) ([]*model.PopulatedBooking, error)
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := client.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if booking.BookingDateTime.IsZero() {
		booking.BookingDateTime = time.Now().UTC()
	}
	booking.BookingDateTime = booking.BookingDateTime.Truncate(time.Millisecond)

	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBookingRepository) FindByUser(ctx context.Context, userID string) ([]*model.PopulatedBooking, error) {
	ctx, cancel := client.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidUserID, userID)
	}

	cursor, err := r.collection.Aggregate(ctx, populateUserPipeline(objectID))
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []*model.PopulatedBooking{}
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func populateUserPipeline(userID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userInfo": userID}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         usersrepo.CollectionName,
			"localField":   "userInfo",
			"foreignField": "_id",
			"as":           "userInfo",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$userInfo",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$project", Value: bson.M{"userInfo.otp": 0}}},
	}
}
