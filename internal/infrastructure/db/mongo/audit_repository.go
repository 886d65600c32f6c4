package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/userdeck/admin-console/internal/core/ports"
)

const collectionAudit = "audit_log"

// AuditRepository persists the dashboard action trail.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAudit)}
}

type auditDoc struct {
	Action    string `bson:"action"`
	UserID    int64  `bson:"user_id,omitempty"`
	UserName  string `bson:"user_name,omitempty"`
	Outcome   string `bson:"outcome"`
	Detail    string `bson:"detail,omitempty"`
	Timestamp int64  `bson:"timestamp"`
}

// Record inserts one audit entry.
func (r *AuditRepository) Record(ctx context.Context, e ports.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := auditDoc{
		Action:    e.Action,
		UserID:    e.UserID,
		UserName:  e.UserName,
		Outcome:   e.Outcome,
		Detail:    e.Detail,
		Timestamp: e.Timestamp.UnixMilli(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// List returns the newest entries first, capped at limit.
func (r *AuditRepository) List(ctx context.Context, limit int64) ([]ports.AuditEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer cursor.Close(ctx)

	var out []ports.AuditEntry
	for cursor.Next(ctx) {
		var doc auditDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode audit entry: %w", err)
		}
		out = append(out, ports.AuditEntry{
			Action:    doc.Action,
			UserID:    doc.UserID,
			UserName:  doc.UserName,
			Outcome:   doc.Outcome,
			Detail:    doc.Detail,
			Timestamp: time.UnixMilli(doc.Timestamp).UTC(),
		})
	}
	return out, cursor.Err()
}

// EnsureIndexes creates the indexes the audit queries rely on.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
