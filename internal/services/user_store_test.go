package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func resetUserDoc(id primitive.ObjectID, expires time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "email", Value: "alice@example.com"},
		{Key: "reset_password_token", Value: "deadbeef"},
		{Key: "reset_password_expires", Value: primitive.NewDateTimeFromTime(expires)},
	}
}

func TestFindByResetToken(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("valid token returns the user", func(mt *mtest.T) {
		userID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "contacthub.users", mtest.FirstBatch,
			resetUserDoc(userID, time.Now().Add(30*time.Minute))))

		u, err := NewUserStore(mt.DB).FindByResetToken(context.Background(), "deadbeef")
		if err != nil {
			mt.Fatalf("FindByResetToken: %v", err)
		}
		if u.ID != userID {
			mt.Errorf("user id = %s, want %s", u.ID.Hex(), userID.Hex())
		}
	})

	mt.Run("expired token always fails", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "contacthub.users", mtest.FirstBatch,
			resetUserDoc(primitive.NewObjectID(), time.Now().Add(-time.Minute))))

		_, err := NewUserStore(mt.DB).FindByResetToken(context.Background(), "deadbeef")
		if !errors.Is(err, ErrInvalidResetToken) {
			mt.Errorf("err = %v, want ErrInvalidResetToken", err)
		}
	})

	mt.Run("token without stored expiry fails", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "contacthub.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "reset_password_token", Value: "deadbeef"},
		}))

		_, err := NewUserStore(mt.DB).FindByResetToken(context.Background(), "deadbeef")
		if !errors.Is(err, ErrInvalidResetToken) {
			mt.Errorf("err = %v, want ErrInvalidResetToken", err)
		}
	})

	mt.Run("unknown token fails", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "contacthub.users", mtest.FirstBatch))

		_, err := NewUserStore(mt.DB).FindByResetToken(context.Background(), "no-such-token")
		if !errors.Is(err, ErrInvalidResetToken) {
			mt.Errorf("err = %v, want ErrInvalidResetToken", err)
		}
	})
}
