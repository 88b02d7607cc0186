package repository

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/tasknest/tasknest/internal/domain/user"
	"github.com/tasknest/tasknest/internal/shared/biztime"
	"github.com/tasknest/tasknest/internal/shared/errors"
)

const mongoSessionCollection = "sessions"

type mongoSession struct {
	ID               string    `bson:"_id"`
	UserID           string    `bson:"user_id"`
	DeviceID         string    `bson:"device_id"`
	RefreshTokenHash string    `bson:"refresh_token_hash"`
	IPAddress        string    `bson:"ip_address,omitempty"`
	UserAgent        string    `bson:"user_agent,omitempty"`
	ExpiresAt        time.Time `bson:"expires_at"`
	CreatedAt        time.Time `bson:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at"`
}

func (m *mongoSession) toDomain() *user.Session {
	return &user.Session{
		ID:               m.ID,
		UserID:           m.UserID,
		DeviceID:         m.DeviceID,
		RefreshTokenHash: m.RefreshTokenHash,
		IPAddress:        m.IPAddress,
		UserAgent:        m.UserAgent,
		ExpiresAt:        m.ExpiresAt.UTC(),
		CreatedAt:        m.CreatedAt.UTC(),
		UpdatedAt:        m.UpdatedAt.UTC(),
	}
}

// MongoSessionRepository keeps sessions in a collection with a unique
// (user_id, device_id) index and a TTL index on expires_at.
type MongoSessionRepository struct {
	coll *mongo.Collection
}

// NewMongoSessionRepository ensures the indexes exist before returning.
func NewMongoSessionRepository(ctx context.Context, database *mongo.Database) (user.SessionRepository, error) {
	coll := database.Collection(mongoSessionCollection)

	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "device_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_user_device"),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("ttl_expires_at"),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session indexes: %w", err)
	}

	return &MongoSessionRepository{coll: coll}, nil
}

func (r *MongoSessionRepository) Create(ctx context.Context, s *user.Session) error {
	doc := mongoSession{
		ID:               s.ID,
		UserID:           s.UserID,
		DeviceID:         s.DeviceID,
		RefreshTokenHash: s.RefreshTokenHash,
		IPAddress:        s.IPAddress,
		UserAgent:        s.UserAgent,
		ExpiresAt:        s.ExpiresAt.UTC(),
		CreatedAt:        s.CreatedAt.UTC(),
		UpdatedAt:        s.UpdatedAt.UTC(),
	}
	deviceFilter := bson.D{{Key: "user_id", Value: s.UserID}, {Key: "device_id", Value: s.DeviceID}}

	// A concurrent login on the same device can win the insert; retry once.
	for attempt := 0; attempt < 2; attempt++ {
		if _, err := r.coll.DeleteOne(ctx, deviceFilter); err != nil {
			return fmt.Errorf("failed to replace device session: %w", err)
		}
		_, err := r.coll.InsertOne(ctx, doc)
		if err == nil {
			return nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("failed to create session: %w", err)
		}
	}
	return errors.NewConflictError("session for device is being replaced concurrently")
}

func (r *MongoSessionRepository) GetByID(ctx context.Context, sessionID string) (*user.Session, error) {
	var doc mongoSession
	err := r.coll.FindOne(ctx, bson.D{
		{Key: "_id", Value: sessionID},
		{Key: "expires_at", Value: bson.D{{Key: "$gt", Value: biztime.NowUTC()}}},
	}).Decode(&doc)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.NewNotFoundError("session not found")
		}
		return nil, fmt.Errorf("failed to get session by ID: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoSessionRepository) ListByUserID(ctx context.Context, userID string) ([]*user.Session, error) {
	cursor, err := r.coll.Find(ctx,
		bson.D{
			{Key: "user_id", Value: userID},
			{Key: "expires_at", Value: bson.D{{Key: "$gt", Value: biztime.NowUTC()}}},
		},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get sessions by user ID: %w", err)
	}

	var docs []mongoSession
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}

	sessions := make([]*user.Session, len(docs))
	for i := range docs {
		sessions[i] = docs[i].toDomain()
	}
	return sessions, nil
}

func (r *MongoSessionRepository) SwapRefreshHash(ctx context.Context, sessionID, oldHash, newHash string, newExpiresAt time.Time) error {
	now := biztime.NowUTC()
	result, err := r.coll.UpdateOne(ctx,
		bson.D{
			{Key: "_id", Value: sessionID},
			{Key: "refresh_token_hash", Value: oldHash},
			{Key: "expires_at", Value: bson.D{{Key: "$gt", Value: now}}},
		},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "refresh_token_hash", Value: newHash},
			{Key: "expires_at", Value: newExpiresAt.UTC()},
			{Key: "updated_at", Value: now},
		}}},
	)
	if err != nil {
		return fmt.Errorf("failed to rotate session: %w", err)
	}
	if result.MatchedCount == 0 {
		return errors.NewNotFoundError("session not found")
	}
	return nil
}

func (r *MongoSessionRepository) DeleteIfRefreshHash(ctx context.Context, sessionID, hash string) error {
	result, err := r.coll.DeleteOne(ctx, bson.D{
		{Key: "_id", Value: sessionID},
		{Key: "refresh_token_hash", Value: hash},
	})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if result.DeletedCount == 0 {
		return errors.NewNotFoundError("session not found")
	}
	return nil
}

func (r *MongoSessionRepository) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	result, err := r.coll.DeleteMany(ctx, bson.D{{Key: "user_id", Value: userID}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete sessions by user ID: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *MongoSessionRepository) DeleteByUserIDExcept(ctx context.Context, userID, keepSessionID string) (int64, error) {
	result, err := r.coll.DeleteMany(ctx, bson.D{
		{Key: "user_id", Value: userID},
		{Key: "_id", Value: bson.D{{Key: "$ne", Value: keepSessionID}}},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete other sessions: %w", err)
	}
	return result.DeletedCount, nil
}

// DeleteExpired sweeps what the TTL monitor has not reached yet.
func (r *MongoSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.coll.DeleteMany(ctx, bson.D{
		{Key: "expires_at", Value: bson.D{{Key: "$lte", Value: now.UTC()}}},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return result.DeletedCount, nil
}
