//go:build integration

package common

import (
	"context"
	"os"
	"testing"
	"time"

	"carrental/pkg/client"
	"carrental/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	DefaultMongoURI     = "mongodb://localhost:27017"
	DefaultDatabaseName = "carrental"
	DefaultServerURL    = "http://localhost:3001"
	ConnectionTimeout   = 10 * time.Second

	UsersCollection    = "Users"
	BookingsCollection = "Bookings"
)

type MongoHelper struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func ServerURL() string {
	return getEnv("TEST_SERVER_URL", DefaultServerURL)
}

func NewMongoHelper(t *testing.T) *MongoHelper {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*ConnectionTimeout)
	defer cancel()

	c := client.NewClient()
	if err := c.SetMongo(ctx, logger.Discard(), getEnv("TEST_MONGO_URI", DefaultMongoURI), ConnectionTimeout, time.Second); err != nil {
		t.Fatalf("failed to connect to MongoDB: %v", err)
	}

	return &MongoHelper{
		Client:   c.Mongo,
		Database: c.Mongo.Database(getEnv("TEST_DB_NAME", DefaultDatabaseName)),
	}
}

func (m *MongoHelper) Close(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.Client.Disconnect(ctx); err != nil {
		t.Logf("warning: failed to disconnect from MongoDB: %v", err)
	}
}

// PendingOTP reads the code the API stored for email. Tests use it in place
// of reading the delivered message.
func (m *MongoHelper) PendingOTP(t *testing.T, email string) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var doc struct {
		OTP string `bson:"otp"`
	}
	err := m.Database.Collection(UsersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		t.Fatalf("failed to read pending OTP for %s: %v", email, err)
	}
	return doc.OTP
}

// DeleteUser removes the user and every booking they own.
func (m *MongoHelper) DeleteUser(t *testing.T, email string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var doc struct {
		ID any `bson:"_id"`
	}
	users := m.Database.Collection(UsersCollection)
	if err := users.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		return
	}
	if _, err := m.Database.Collection(BookingsCollection).DeleteMany(ctx, bson.M{"userInfo": doc.ID}); err != nil {
		t.Logf("warning: failed to clean bookings for %s: %v", email, err)
	}
	if _, err := users.DeleteOne(ctx, bson.M{"_id": doc.ID}); err != nil {
		t.Logf("warning: failed to delete user %s: %v", email, err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
