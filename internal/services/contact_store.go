package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/contacthub/contacthub-backend/internal/models"
)

// ContactStore owns the "contacts" collection and enforces the
// ownership/sharing rules.
type ContactStore struct {
	col   *mongo.Collection
	users *UserStore
}

func NewContactStore(db *mongo.Database, users *UserStore) *ContactStore {
	return &ContactStore{col: db.Collection("contacts"), users: users}
}

// EnsureIndexes configures query indexes: (owner, email) for per-owner
// lookups and shared_users for the shared-with-me side of listings. Contact
// email is deliberately not globally unique; two users may store the same
// person.
func (s *ContactStore) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "owner", Value: 1},
				{Key: "email", Value: 1},
			},
			Options: options.Index().SetName("idx_owner_email"),
		},
		{
			Keys:    bson.D{{Key: "shared_users", Value: 1}},
			Options: options.Index().SetName("idx_shared_users"),
		},
	}

	for _, m := range indexes {
		if _, err := s.col.Indexes().CreateOne(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// Create inserts a contact. The owner is always the id the caller's route
// supplied; any owner in the payload has been discarded by the handler.
func (s *ContactStore) Create(ctx context.Context, c *models.Contact) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.SharedUsers = nil

	res, err := s.col.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = id
	}
	return nil
}

// ListForUser answers both "my contacts" and "contacts shared with me" in a
// single query.
func (s *ContactStore) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Contact, error) {
	filter := bson.M{"$or": []bson.M{
		{"owner": userID},
		{"shared_users": userID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	contacts := make([]models.Contact, 0)
	if err := cur.All(ctx, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

// GetForViewer returns a contact only when userID is its owner or a shared
// user.
func (s *ContactStore) GetForViewer(ctx context.Context, contactID, userID primitive.ObjectID) (*models.Contact, error) {
	filter := bson.M{
		"_id": contactID,
		"$or": []bson.M{
			{"owner": userID},
			{"shared_users": userID},
		},
	}

	var c models.Contact
	if err := s.col.FindOne(ctx, filter).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *ContactStore) get(ctx context.Context, contactID primitive.ObjectID) (*models.Contact, error) {
	var c models.Contact
	if err := s.col.FindOne(ctx, bson.M{"_id": contactID}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Update merges patch fields into the contact. Only the owner may update;
// a non-owner gets ErrNotOwner, never a silent miss.
func (s *ContactStore) Update(ctx context.Context, contactID, userID primitive.ObjectID, patch bson.M) (*models.Contact, error) {
	existing, err := s.get(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if !existing.IsOwner(userID) {
		return nil, ErrNotOwner
	}

	patch["updated_at"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var c models.Contact
	err = s.col.FindOneAndUpdate(ctx, bson.M{"_id": contactID, "owner": userID}, bson.M{"$set": patch}, opts).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Delete removes a contact. Owner only.
func (s *ContactStore) Delete(ctx context.Context, contactID, userID primitive.ObjectID) error {
	existing, err := s.get(ctx, contactID)
	if err != nil {
		return err
	}
	if !existing.IsOwner(userID) {
		return ErrNotOwner
	}

	_, err = s.col.DeleteOne(ctx, bson.M{"_id": contactID})
	return err
}

// Share grants userID read access. The actor must own the contact, the
// owner can never be a shared user, and sharing twice reports
// ErrAlreadyShared rather than duplicating the entry.
func (s *ContactStore) Share(ctx context.Context, contactID, userID, actorID primitive.ObjectID) (*models.SharedContact, error) {
	c, err := s.get(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if !c.IsOwner(actorID) {
		return nil, ErrNotOwner
	}
	if c.IsOwner(userID) {
		return nil, ErrShareWithSelf
	}
	if c.IsSharedWith(userID) {
		return nil, ErrAlreadyShared
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	_, err = s.col.UpdateOne(ctx, bson.M{"_id": contactID}, bson.M{
		"$addToSet": bson.M{"shared_users": userID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return nil, err
	}

	return s.resolve(ctx, contactID)
}

// Unshare revokes userID's access. Removing an absent share is a no-op.
func (s *ContactStore) Unshare(ctx context.Context, contactID, userID, actorID primitive.ObjectID) (*models.SharedContact, error) {
	c, err := s.get(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if !c.IsOwner(actorID) {
		return nil, ErrNotOwner
	}

	_, err = s.col.UpdateOne(ctx, bson.M{"_id": contactID}, bson.M{
		"$pull": bson.M{"shared_users": userID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return nil, err
	}

	return s.resolve(ctx, contactID)
}

// resolve reloads a contact and expands shared_users into display fields
// (name and email instead of raw ids).
func (s *ContactStore) resolve(ctx context.Context, contactID primitive.ObjectID) (*models.SharedContact, error) {
	c, err := s.get(ctx, contactID)
	if err != nil {
		return nil, err
	}

	out := &models.SharedContact{Contact: *c, SharedUsers: []models.SharedUserRef{}}
	if len(c.SharedUsers) == 0 {
		return out, nil
	}

	opts := options.Find().SetProjection(bson.M{
		"first_name": 1,
		"last_name":  1,
		"email":      1,
	})
	cur, err := s.users.col.Find(ctx, bson.M{"_id": bson.M{"$in": c.SharedUsers}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	if err := cur.All(ctx, &out.SharedUsers); err != nil {
		return nil, err
	}
	return out, nil
}
