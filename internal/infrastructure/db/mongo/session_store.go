package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
	"github.com/garimobility/admin-dashboard/internal/infrastructure/db"
)

const sessionCollection = "dashboard_sessions"

// SessionStore persists sessions in MongoDB. Expired documents are removed by
// a TTL index on expires_at and ignored on read until then.
type SessionStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewSessionStore(database *mongo.Database) *SessionStore {
	return &SessionStore{coll: database.Collection(sessionCollection), now: time.Now}
}

type sessionDoc struct {
	Key       string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// EnsureIndexes creates the TTL index. Call once at startup.
func (s *SessionStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("create session ttl index: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc sessionDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": db.SessionKey(id), "expires_at": bson.M{"$gt": s.now().UTC()}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	return db.DecodeSession(doc.Data)
}

func (s *SessionStore) Set(ctx context.Context, sess *domain.Session, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	data, err := db.EncodeSession(sess)
	if err != nil {
		return err
	}
	doc := sessionDoc{Key: db.SessionKey(sess.ID), Data: data, ExpiresAt: s.now().Add(ttl).UTC()}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": doc.Key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": db.SessionKey(id)}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}
