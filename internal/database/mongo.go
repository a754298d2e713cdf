package repository

import (
	"EnrollHub/entity"
	"EnrollHub/internal/config"
	"EnrollHub/internal/lib/sl"
	"EnrollHub/internal/service/translation"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	programsCollection       = "programs"
	paymentMethodsCollection = "payment_methods"
	couponsCollection        = "coupons"
	registrationsCollection  = "registrations"
	sessionsCollection       = "enrollment_sessions"
)

var ErrNotFound = entity.ErrNotFound

type MongoDB struct {
	ctx           context.Context
	clientOptions *options.ClientOptions
	database      string
	normalizer    *translation.Normalizer
	log           *slog.Logger
}

func NewMongoClient(conf *config.Config, logger *slog.Logger) (*MongoDB, error) {
	if !conf.Mongo.Enabled {
		return nil, nil
	}
	connectionUri := fmt.Sprintf("mongodb://%s:%s", conf.Mongo.Host, conf.Mongo.Port)
	clientOptions := options.Client().ApplyURI(connectionUri)
	if conf.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   conf.Mongo.User,
			Password:   conf.Mongo.Password,
			AuthSource: conf.Mongo.Database,
		})
	}
	client := &MongoDB{
		ctx:           context.Background(),
		clientOptions: clientOptions,
		database:      conf.Mongo.Database,
		normalizer:    translation.NewNormalizer(entity.DefaultLocale, logger),
		log:           logger.With(sl.Module("mongodb")),
	}
	return client, nil
}

func (m *MongoDB) connect() (*mongo.Client, error) {
	connection, err := mongo.Connect(m.ctx, m.clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect error: %w", err)
	}
	return connection, nil
}

func (m *MongoDB) disconnect(connection *mongo.Client) {
	_ = connection.Disconnect(m.ctx)
}

func (m *MongoDB) findError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	return fmt.Errorf("mongodb find error: %w", err)
}

// Ping checks that the server is reachable with the configured credentials.
func (m *MongoDB) Ping(ctx context.Context) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)
	return connection.Ping(ctx, nil)
}

// rawDocuments reads a whole collection without decoding into a struct, so that
// legacy shaped documents can be normalized first.
func (m *MongoDB) rawDocuments(ctx context.Context, collectionName string, sort bson.D) ([]bson.M, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionName)
	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	cursor, err := collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find %s: %w", collectionName, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongodb decode %s: %w", collectionName, err)
	}
	return docs, nil
}

// upsertRaw writes doc under id with $set semantics; fields absent from doc are kept.
func (m *MongoDB) upsertRaw(ctx context.Context, collectionName string, id interface{}, doc bson.M) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	set := make(bson.M, len(doc))
	for k, v := range doc {
		if k != "_id" {
			set[k] = v
		}
	}

	collection := connection.Database(m.database).Collection(collectionName)
	filter := bson.D{{Key: "_id", Value: id}}
	update := bson.D{{Key: "$set", Value: set}}
	opts := options.Update().SetUpsert(true)

	if _, err = collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("mongodb upsert %s: %w", collectionName, err)
	}
	return nil
}

func (m *MongoDB) upsert(ctx context.Context, collectionName string, id string, doc interface{}) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionName)
	filter := bson.D{{Key: "_id", Value: id}}
	update := bson.D{{Key: "$set", Value: doc}}
	opts := options.Update().SetUpsert(true)

	if _, err = collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("mongodb upsert %s: %w", collectionName, err)
	}
	return nil
}

func (m *MongoDB) delete(ctx context.Context, collectionName string, id string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionName)
	if _, err = collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return fmt.Errorf("mongodb delete %s: %w", collectionName, err)
	}
	return nil
}
