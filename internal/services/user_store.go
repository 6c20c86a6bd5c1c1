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
	"github.com/contacthub/contacthub-backend/pkg/utils"
)

// UserStore owns the "users" collection.
type UserStore struct {
	col *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{col: db.Collection("users")}
}

// EnsureIndexes configures the unique email index. Uniqueness spans
// soft-deleted accounts on purpose: a deleted user's email stays reserved.
// Called on startup from main after Mongo has connected.
func (s *UserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("idx_email_unique"),
	})
	return err
}

// Create hashes the plaintext password and inserts the user. The hash
// happens here, at persistence time, so plaintext never reaches the
// collection. Returns ErrEmailTaken on a duplicate email.
func (s *UserStore) Create(ctx context.Context, u *models.User, plainPassword string) error {
	hashed, err := utils.HashPassword(plainPassword)
	if err != nil {
		return err
	}
	u.Password = hashed

	if u.Role == "" {
		u.Role = models.RoleUser
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	res, err := s.col.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = id
	}
	return nil
}

// FindByEmail returns the full user document, password hash included, for
// credential checks.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID loads a user with the password projected out.
func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	opts := options.FindOne().SetProjection(bson.M{"password": 0})

	var u models.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// List returns every non-deleted account that is not an admin.
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	filter := bson.M{
		"role":       bson.M{"$ne": models.RoleAdmin},
		"is_deleted": false,
	}
	opts := options.Find().
		SetProjection(bson.M{"password": 0}).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := make([]models.User, 0)
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListOtherUsers returns all approved, active, non-deleted "user"-role
// accounts except excludeID. This feeds the share-candidate picker.
func (s *UserStore) ListOtherUsers(ctx context.Context, excludeID primitive.ObjectID) ([]models.User, error) {
	filter := bson.M{
		"_id":         bson.M{"$ne": excludeID},
		"role":        models.RoleUser,
		"is_deleted":  false,
		"is_active":   true,
		"is_approved": true,
	}
	opts := options.Find().SetProjection(bson.M{"password": 0})

	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := make([]models.User, 0)
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Update applies a field patch and returns the updated document.
func (s *UserStore) Update(ctx context.Context, id primitive.ObjectID, patch bson.M) (*models.User, error) {
	patch["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"password": 0})

	var u models.User
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": patch}, opts).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &u, nil
}

// SoftDelete flags the account deleted and inactive. Documents are never
// removed, so the email stays unique-reserved.
func (s *UserStore) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"is_deleted": true,
		"is_active":  false,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetResetToken stores a password-reset token and its expiry.
func (s *UserStore) SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expires time.Time) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"reset_password_token":   token,
		"reset_password_expires": expires.UTC(),
		"updated_at":             time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// FindByResetToken matches an unexpired reset token. An expired token is
// indistinguishable from an unknown one; both return ErrInvalidResetToken.
func (s *UserStore) FindByResetToken(ctx context.Context, token string) (*models.User, error) {
	var u models.User
	err := s.col.FindOne(ctx, bson.M{"reset_password_token": token}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidResetToken
		}
		return nil, err
	}
	if u.ResetPasswordExpires == nil || !u.ResetPasswordExpires.After(time.Now()) {
		return nil, ErrInvalidResetToken
	}
	return &u, nil
}

// UpdatePassword re-hashes the new password and clears any reset token.
func (s *UserStore) UpdatePassword(ctx context.Context, id primitive.ObjectID, plainPassword string) error {
	hashed, err := utils.HashPassword(plainPassword)
	if err != nil {
		return err
	}

	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"password":   hashed,
			"updated_at": time.Now().UTC(),
		},
		"$unset": bson.M{
			"reset_password_token":   "",
			"reset_password_expires": "",
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
