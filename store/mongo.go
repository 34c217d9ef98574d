package store

import (
	"context"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"servedc-be/models"
)

// snapshotID matches the storage key of the original web client.
const snapshotID = "serve_dc_v2_state"

// MongoSnapshot keeps the whole state as a single document holding the
// serialized blob, upserted wholesale on every save. The snapshot contract
// is identical to FileSnapshot; only the medium differs.
type MongoSnapshot struct {
	collection *mongo.Collection
}

func NewMongoSnapshot(uri string) (*MongoSnapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.NewClient(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return &MongoSnapshot{
		collection: client.Database("servedc").Collection("snapshots"),
	}, nil
}

func (m *MongoSnapshot) Load() (*models.AppState, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc struct {
		ID   string `bson:"_id"`
		Blob string `bson:"blob"`
	}
	err := m.collection.FindOne(ctx, bson.M{"_id": snapshotID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var state models.AppState
	if err := json.Unmarshal([]byte(doc.Blob), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (m *MongoSnapshot) Save(state *models.AppState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = m.collection.UpdateOne(ctx,
		bson.M{"_id": snapshotID},
		bson.M{"$set": bson.M{"blob": string(data)}},
		options.Update().SetUpsert(true),
	)
	return err
}
