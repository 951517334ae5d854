// File: database/repository/booking/booking_mongo.go
package bookingRepo

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

// MongoBookingRequestRepo implements repository.BookingRequestRepository.
type MongoBookingRequestRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRequestRepo returns a repo bound to the booking_requests
// collection and ensures its indexes.
func NewMongoBookingRequestRepo() *MongoBookingRequestRepo {
	coll := database.MongoClient.Database(config.AppConfig.MongoDB).Collection("booking_requests")
	repo := &MongoBookingRequestRepo{coll: coll}
	repo.ensureIndexes()
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBookingRequestRepo) ensureIndexes() {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, _ = r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	})
}

// Create inserts a new booking request document.
func (r *MongoBookingRequestRepo) Create(req *models.BookingRequest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to create booking request: %w", err)
	}
	return nil
}

// Update replaces the stored aggregate. The seq filter refuses writes from a
// snapshot older than what is already persisted.
func (r *MongoBookingRequestRepo) Update(req *models.BookingRequest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	req.UpdatedAt = time.Now()
	filter := bson.M{"id": req.ID, "seq": bson.M{"$lte": req.Seq}}
	update := bson.M{"$set": req}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update booking request %s: %w", req.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking request %s not found or ahead of seq %d", req.ID, req.Seq)
	}
	return nil
}

// GetByID fetches one booking request by its ID.
func (r *MongoBookingRequestRepo) GetByID(id string) (*models.BookingRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var req models.BookingRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("booking request %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch booking request %s: %w", id, err)
	}
	return &req, nil
}

// ListByUser returns the most recent request summaries for a user.
func (r *MongoBookingRequestRepo) ListByUser(userID string, limit int) ([]models.RequestSummary, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if limit <= 0 {
		limit = 10
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"id": 1, "state": 1, "route": 1, "createdAt": 1})

	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list booking requests for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var summaries []models.RequestSummary
	for cursor.Next(ctx) {
		var doc struct {
			ID        string               `bson:"id"`
			State     models.RequestState  `bson:"state"`
			Route     models.RouteCriteria `bson:"route"`
			CreatedAt time.Time            `bson:"createdAt"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode booking request summary: %w", err)
		}
		summaries = append(summaries, models.RequestSummary{
			ID:        doc.ID,
			State:     doc.State,
			Origin:    doc.Route.Origin,
			Dest:      doc.Route.Destination,
			CreatedAt: doc.CreatedAt,
		})
	}
	return summaries, cursor.Err()
}
