package client

import (
	"context"
	"errors"
	"time"

	"carrental/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Client struct {
	Mongo *mongo.Client
}

func NewClient() *Client {
	return &Client{}
}

// SetMongo connects and pings MongoDB. A failed attempt is logged and retried
// after retryInterval; the loop only ends on success or when ctx is done.
func (c *Client) SetMongo(ctx context.Context, log *logger.Logger, mongoURI string, connTimeout, retryInterval time.Duration) error {
	for attempt := 1; ; attempt++ {
		client, err := connectMongo(ctx, mongoURI, connTimeout)
		if err == nil {
			log.Info("Successfully connected to MongoDB", "attempt", attempt)
			c.Mongo = client
			return nil
		}

		log.Error("Failed to connect to MongoDB, retrying",
			"error", err,
			"attempt", attempt,
			"retry_in", retryInterval,
		)

		timer := time.NewTimer(retryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func connectMongo(ctx context.Context, mongoURI string, connTimeout time.Duration) (*mongo.Client, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, connTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(mongoURI).
		SetServerSelectionTimeout(connTimeout)

	client, err := mongo.Connect(attemptCtx, opts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(attemptCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

func (c *Client) GracefulShutdown(log *logger.Logger) {
	if c.Mongo == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := c.Mongo.Disconnect(ctx); err != nil && !errors.Is(err, mongo.ErrClientDisconnected) {
		log.Error("Failed to disconnect from MongoDB", "error", err)
		return
	}
	log.Info("Disconnected from MongoDB")
}
