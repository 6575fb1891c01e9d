package db

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrMissingURI is a startup fault: the connection string must be present
// before the server starts taking requests.
var ErrMissingURI = errors.New("db: MONGODB_URI is not set")

// Mongo is the process-wide handle to the document store. The connection is
// dialed lazily on first use; concurrent first callers share the single
// in-flight attempt and its outcome, success or failure, is cached for the
// life of the process.
type Mongo struct {
	uri    string
	dbName string

	once     sync.Once
	client   *mongo.Client
	events   *mongo.Collection
	bookings *mongo.Collection
	connErr  error
}

// New validates the connection string eagerly but does not dial.
func New(uri, dbName string) (*Mongo, error) {
	if uri == "" {
		return nil, ErrMissingURI
	}
	if dbName == "" {
		dbName = "eventdb"
	}
	return &Mongo{uri: uri, dbName: dbName}, nil
}

func (m *Mongo) connect(_ context.Context) error {
	m.once.Do(func() {
		// The dial is detached from the triggering request: its outcome is
		// cached for every later caller, so a client hanging up mid-dial
		// must not poison the cache with context.Canceled.
		dialCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(m.uri))
		if err != nil {
			m.connErr = err
			return
		}

		if err := client.Ping(dialCtx, nil); err != nil {
			m.connErr = err
			return
		}

		database := client.Database(m.dbName)
		m.client = client
		m.events = database.Collection("events")
		m.bookings = database.Collection("bookings")
		m.connErr = m.ensureIndexes(dialCtx)
	})
	return m.connErr
}

// ensureIndexes lets the storage layer enforce slug uniqueness and keeps
// booking lookups by event cheap.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	_, err := m.events.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "eventid", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return err
	}
	_, err = m.bookings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "eventid", Value: 1}},
	})
	return err
}

// Close disconnects the cached client, if one was ever established.
func (m *Mongo) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}
