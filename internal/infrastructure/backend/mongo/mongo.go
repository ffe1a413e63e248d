// Package mongo provides the document store implementation of the
// RecordBackend interface.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cdrscope/cdrscope/internal/domain/entities"
	"github.com/cdrscope/cdrscope/internal/infrastructure/config"
)

const driverName = "mongo"

// Backend implements ports.RecordBackend against a MongoDB collection,
// delegating selectivity to the store's native range+equality query.
type Backend struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// New connects to the configured MongoDB deployment.
func New(ctx context.Context, cfg config.MongoConfig) (*Backend, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo uri is required")
	}
	if cfg.Database == "" || cfg.Collection == "" {
		return nil, errors.New("mongo database and collection are required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	return &Backend{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Close disconnects from the deployment.
func (b *Backend) Close() error {
	return b.client.Disconnect(context.Background())
}

// Find translates the criteria into a native query document and returns
// the matching records sorted by id.
func (b *Backend) Find(ctx context.Context, criteria entities.Criteria) ([]entities.Record, error) {
	cursor, err := b.coll.Find(ctx, buildFilter(criteria), options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, &entities.BackendError{Driver: driverName, Err: fmt.Errorf("querying records: %w", err)}
	}

	var records []entities.Record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, &entities.BackendError{Driver: driverName, Err: fmt.Errorf("decoding records: %w", err)}
	}
	return records, nil
}

// buildFilter mirrors the filter pipeline: the mandatory range condition
// plus one equality key per active constraint. Absent device fields never
// match an equality key, so missing attributes are excluded as in the
// in-memory pipeline.
func buildFilter(criteria entities.Criteria) bson.M {
	filter := bson.M{
		"originationTime": bson.M{"$gte": criteria.Start, "$lte": criteria.End},
	}
	if criteria.Phone != "" {
		filter["devices.phone"] = criteria.Phone
	}
	if criteria.Voicemail != "" {
		filter["devices.voicemail"] = criteria.Voicemail
	}
	if criteria.UserID != "" {
		filter["userId"] = criteria.UserID
	}
	if criteria.ClusterID != "" {
		filter["clusterId"] = criteria.ClusterID
	}
	return filter
}
