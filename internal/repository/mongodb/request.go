package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"logitrack/internal/domain"
	"logitrack/internal/repository"
)

// RequestRepository is a MongoDB implementation of repository.RequestRepository.
type RequestRepository struct {
	coll *mongo.Collection
}

// NewRequestRepository creates a new MongoDB request repository.
func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{coll: db.Collection(requestCollection)}
}

type requestDoc struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Type         string    `bson:"type"`
	Size         string    `bson:"size"`
	Weight       float64   `bson:"weight"`
	Origin       string    `bson:"origin"`
	Destination  string    `bson:"destination"`
	DeliveryDate time.Time `bson:"deliveryDate,omitempty"`
	CustomerID   string    `bson:"customerId"`
	Status       string    `bson:"status"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func toRequestDoc(r *domain.CargoRequest) *requestDoc {
	return &requestDoc{
		ID:           r.ID,
		Name:         r.Name,
		Type:         r.Type,
		Size:         string(r.Size),
		Weight:       r.Weight,
		Origin:       r.Origin,
		Destination:  r.Destination,
		DeliveryDate: r.DeliveryDate,
		CustomerID:   r.CustomerID,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (d *requestDoc) toDomain() *domain.CargoRequest {
	return &domain.CargoRequest{
		ID:           d.ID,
		Name:         d.Name,
		Type:         d.Type,
		Size:         domain.CargoSize(d.Size),
		Weight:       d.Weight,
		Origin:       d.Origin,
		Destination:  d.Destination,
		DeliveryDate: d.DeliveryDate,
		CustomerID:   d.CustomerID,
		Status:       domain.RequestStatus(d.Status),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// Create persists a new request.
func (r *RequestRepository) Create(ctx context.Context, req *domain.CargoRequest) error {
	_, err := r.coll.InsertOne(ctx, toRequestDoc(req))
	return err
}

// GetByID retrieves a request by ID.
func (r *RequestRepository) GetByID(ctx context.Context, id string) (*domain.CargoRequest, error) {
	var doc requestDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// GetPending retrieves all requests awaiting triage.
func (r *RequestRepository) GetPending(ctx context.Context) ([]*domain.CargoRequest, error) {
	return r.find(ctx, bson.M{"status": string(domain.RequestStatusPending)})
}

// GetByCustomer retrieves all requests owned by a customer.
func (r *RequestRepository) GetByCustomer(ctx context.Context, customerID string) ([]*domain.CargoRequest, error) {
	return r.find(ctx, bson.M{"customerId": customerID})
}

// Update replaces the mutable fields of an existing request.
func (r *RequestRepository) Update(ctx context.Context, req *domain.CargoRequest) error {
	update := bson.M{"$set": bson.M{
		"name":         req.Name,
		"type":         req.Type,
		"size":         string(req.Size),
		"weight":       req.Weight,
		"origin":       req.Origin,
		"destination":  req.Destination,
		"deliveryDate": req.DeliveryDate,
		"status":       string(req.Status),
		"updatedAt":    time.Now().UTC(),
	}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": req.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a request owned by the given customer. The ownership
// filter mirrors the lookup, so a foreign request reads as absent.
func (r *RequestRepository) Delete(ctx context.Context, id, customerID string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "customerId": customerID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetStatus updates the triage status.
func (r *RequestRepository) SetStatus(ctx context.Context, id string, status domain.RequestStatus) error {
	update := bson.M{"$set": bson.M{
		"status":    string(status),
		"updatedAt": time.Now().UTC(),
	}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RequestRepository) find(ctx context.Context, filter bson.M) ([]*domain.CargoRequest, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []*domain.CargoRequest
	for cursor.Next(ctx) {
		var doc requestDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		requests = append(requests, doc.toDomain())
	}
	return requests, cursor.Err()
}
