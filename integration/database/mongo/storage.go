package mongo

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	driver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Chrissankov/gymshark-ecommerce/core/kv"
)

var _ kv.Storage = (*Storage)(nil)

type entry struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Storage maps keys to documents of one collection.
type Storage struct {
	coll   *driver.Collection
	closed atomic.Bool
}

// NewStorage wraps coll. The client stays owned by the caller.
func NewStorage(coll *driver.Collection) *Storage {
	return &Storage{coll: coll}
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	if err := s.check(key); err != nil {
		return "", false, err
	}
	var e entry
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&e)
	if errors.Is(err, driver.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	if err := s.check(key); err != nil {
		return err
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "value", Value: value},
		{Key: "updated_at", Value: time.Now().UTC()},
	}}}
	_, err := s.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: key}}, update, options.UpdateOne().SetUpsert(true))
	return err
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	if err := s.check(key); err != nil {
		return err
	}
	_, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: key}})
	return err
}

// Close marks the storage closed. The client is left connected.
func (s *Storage) Close() error {
	s.closed.Store(true)
	return nil
}

func (s *Storage) check(key string) error {
	if s.closed.Load() {
		return kv.ErrClosed
	}
	if key == "" {
		return kv.ErrEmptyKey
	}
	return nil
}
