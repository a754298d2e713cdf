package repository

import (
	"EnrollHub/internal/service/enrollment"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sessionExpiryIndex = "updated_at_ttl"

// EnsureSessionExpiry lets the server drop sessions untouched for ttl.
// An index with a different ttl is replaced.
func (m *MongoDB) EnsureSessionExpiry(ctx context.Context, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	indexes := connection.Database(m.database).Collection(sessionsCollection).Indexes()
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "updated_at", Value: 1}},
		Options: options.Index().SetName(sessionExpiryIndex).SetExpireAfterSeconds(int32(ttl.Seconds())),
	}

	_, err = indexes.CreateOne(ctx, model)
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && (cmdErr.Code == 85 || cmdErr.Code == 86) {
		// IndexOptionsConflict / IndexKeySpecsConflict: the ttl changed
		if _, err = indexes.DropOne(ctx, sessionExpiryIndex); err != nil {
			return fmt.Errorf("mongodb drop session index: %w", err)
		}
		_, err = indexes.CreateOne(ctx, model)
	}
	if err != nil {
		return fmt.Errorf("mongodb session index: %w", err)
	}
	m.log.With(slog.Duration("ttl", ttl)).Debug("session expiry index ready")
	return nil
}

// SaveEnrollmentState replaces the stored session as a whole, so fields
// cleared in memory are cleared in the database as well.
func (m *MongoDB) SaveEnrollmentState(ctx context.Context, state *enrollment.State) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	_, err = connection.Database(m.database).Collection(sessionsCollection).
		ReplaceOne(ctx, bson.D{{Key: "_id", Value: state.ID}}, state, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongodb save session %s: %w", state.ID, err)
	}
	return nil
}

// LoadEnrollmentState retrieves a wizard session, nil when it does not exist.
func (m *MongoDB) LoadEnrollmentState(ctx context.Context, id string) (*enrollment.State, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	var state enrollment.State
	err = connection.Database(m.database).Collection(sessionsCollection).
		FindOne(ctx, bson.D{{Key: "_id", Value: id}}).
		Decode(&state)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb load session %s: %w", id, err)
	}
	return &state, nil
}

func (m *MongoDB) DeleteEnrollmentState(ctx context.Context, id string) error {
	return m.delete(ctx, sessionsCollection, id)
}
