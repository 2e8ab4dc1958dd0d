package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
	"github.com/garimobility/admin-dashboard/internal/infrastructure/db"
)

func TestSessionStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("get decodes the stored session", func(mt *mtest.T) {
		store := NewSessionStore(mt.DB)
		data, err := db.EncodeSession(&domain.Session{ID: "sess-1", Token: "abc"})
		if err != nil {
			mt.Fatalf("encode: %v", err)
		}
		ns := mt.DB.Name() + "." + sessionCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: db.SessionKey("sess-1")},
			{Key: "data", Value: data},
			{Key: "expires_at", Value: time.Now().Add(time.Hour).UTC()},
		}))

		got, err := store.Get(ctx, "sess-1")
		if err != nil || got.Token != "abc" {
			mt.Fatalf("unexpected session %+v (%v)", got, err)
		}
	})

	mt.Run("get maps no documents to not found", func(mt *mtest.T) {
		store := NewSessionStore(mt.DB)
		ns := mt.DB.Name() + "." + sessionCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		if _, err := store.Get(ctx, "sess-1"); !errors.Is(err, domain.ErrSessionNotFound) {
			mt.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
	})

	mt.Run("get reports corrupt data", func(mt *mtest.T) {
		store := NewSessionStore(mt.DB)
		ns := mt.DB.Name() + "." + sessionCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: db.SessionKey("sess-1")},
			{Key: "data", Value: []byte("{garbage")},
			{Key: "expires_at", Value: time.Now().Add(time.Hour).UTC()},
		}))

		if _, err := store.Get(ctx, "sess-1"); !errors.Is(err, domain.ErrSessionCorrupt) {
			mt.Fatalf("expected ErrSessionCorrupt, got %v", err)
		}
	})

	mt.Run("set upserts", func(mt *mtest.T) {
		store := NewSessionStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 0}))

		if err := store.Set(ctx, &domain.Session{ID: "sess-1", Token: "abc"}, time.Hour); err != nil {
			mt.Fatalf("set: %v", err)
		}
	})

	mt.Run("set wraps server errors", func(mt *mtest.T) {
		store := NewSessionStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "bad value"}))

		if err := store.Set(ctx, &domain.Session{ID: "sess-1", Token: "abc"}, time.Hour); err == nil {
			mt.Fatalf("expected an error")
		}
	})

	mt.Run("clear deletes", func(mt *mtest.T) {
		store := NewSessionStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		if err := store.Clear(ctx, "sess-1"); err != nil {
			mt.Fatalf("clear: %v", err)
		}
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		store := NewSessionStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		if err := store.EnsureIndexes(ctx); err != nil {
			mt.Fatalf("ensure indexes: %v", err)
		}
	})
}
