// File: database/repository/audit/audit_mongo.go
package auditRepo

import (
	"context"
	"fmt"
	"time"

	"freightbook/config"
	"freightbook/database"
	"freightbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAuditRepo implements repository.AuditRepository over an append-only
// collection. There is no update or delete path.
type MongoAuditRepo struct {
	coll *mongo.Collection
}

func NewMongoAuditRepo() *MongoAuditRepo {
	coll := database.MongoClient.Database(config.AppConfig.MongoDB).Collection("audit_log")
	repo := &MongoAuditRepo{coll: coll}
	repo.ensureIndexes()
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAuditRepo) ensureIndexes() {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, _ = r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "requestId", Value: 1}, {Key: "timestamp", Value: 1}},
	})
}

// Append inserts one audit entry.
func (r *MongoAuditRepo) Append(entry *models.AuditEntry) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// ListByRequest returns the audit trail for one request in write order.
func (r *MongoAuditRepo) ListByRequest(requestID string) ([]models.AuditEntry, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"requestId": requestID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries for %s: %w", requestID, err)
	}
	defer cursor.Close(ctx)

	var entries []models.AuditEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode audit entries: %w", err)
	}
	return entries, nil
}
