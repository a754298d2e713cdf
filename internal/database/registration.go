package repository

import (
	"EnrollHub/entity"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *MongoDB) SaveRegistration(ctx context.Context, registration *entity.Registration) error {
	return m.upsert(ctx, registrationsCollection, registration.ID, registration)
}

// GetRegistrations returns all registrations, newest first.
func (m *MongoDB) GetRegistrations(ctx context.Context) ([]entity.Registration, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(registrationsCollection)
	opts := options.Find().SetSort(bson.D{{Key: "registered_at", Value: -1}})
	cursor, err := collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find registrations: %w", err)
	}
	defer cursor.Close(ctx)

	registrations := make([]entity.Registration, 0)
	if err = cursor.All(ctx, &registrations); err != nil {
		return nil, fmt.Errorf("mongodb decode registrations: %w", err)
	}
	return registrations, nil
}

func (m *MongoDB) GetRegistration(ctx context.Context, id string) (*entity.Registration, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(registrationsCollection)

	var registration entity.Registration
	if err = collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&registration); err != nil {
		return nil, m.findError(err)
	}
	return &registration, nil
}

// SetRegistrationVerification changes only the admin-controlled verification fields.
func (m *MongoDB) SetRegistrationVerification(ctx context.Context, id string, verified bool, note string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(registrationsCollection)
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "payment_verified", Value: verified},
		{Key: "admin_note", Value: note},
	}}}

	res, err := collection.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return fmt.Errorf("mongodb update registration: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("registration %s: %w", id, ErrNotFound)
	}
	return nil
}

func (m *MongoDB) DeleteRegistration(ctx context.Context, id string) error {
	return m.delete(ctx, registrationsCollection, id)
}
