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

// CargoRepository is a MongoDB implementation of repository.CargoRepository.
type CargoRepository struct {
	coll *mongo.Collection
}

// NewCargoRepository creates a new MongoDB cargo repository.
func NewCargoRepository(db *mongo.Database) *CargoRepository {
	return &CargoRepository{coll: db.Collection(cargoCollection)}
}

// cargoDoc is the stored document shape for a cargo.
type cargoDoc struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Type         string    `bson:"type"`
	Size         string    `bson:"size"`
	Weight       float64   `bson:"weight"`
	Origin       string    `bson:"origin"`
	Destination  string    `bson:"destination"`
	Status       string    `bson:"status"`
	Location     string    `bson:"location"`
	BusinessID   string    `bson:"businessId"`
	DriverID     string    `bson:"driverId"`
	CustomerID   string    `bson:"customerId"`
	DeliveryDate time.Time `bson:"deliveryDate,omitempty"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func toCargoDoc(c *domain.Cargo) *cargoDoc {
	return &cargoDoc{
		ID:           c.ID,
		Name:         c.Name,
		Type:         c.Type,
		Size:         string(c.Size),
		Weight:       c.Weight,
		Origin:       c.Origin,
		Destination:  c.Destination,
		Status:       string(c.Status),
		Location:     c.Location,
		BusinessID:   c.BusinessID,
		DriverID:     c.DriverID,
		CustomerID:   c.CustomerID,
		DeliveryDate: c.DeliveryDate,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (d *cargoDoc) toDomain() *domain.Cargo {
	return &domain.Cargo{
		ID:           d.ID,
		Name:         d.Name,
		Type:         d.Type,
		Size:         domain.CargoSize(d.Size),
		Weight:       d.Weight,
		Origin:       d.Origin,
		Destination:  d.Destination,
		Status:       domain.CargoStatus(d.Status),
		Location:     d.Location,
		BusinessID:   d.BusinessID,
		DriverID:     d.DriverID,
		CustomerID:   d.CustomerID,
		DeliveryDate: d.DeliveryDate,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// Create persists a new cargo.
func (r *CargoRepository) Create(ctx context.Context, cargo *domain.Cargo) error {
	_, err := r.coll.InsertOne(ctx, toCargoDoc(cargo))
	return err
}

// GetByID retrieves a cargo by ID.
func (r *CargoRepository) GetByID(ctx context.Context, id string) (*domain.Cargo, error) {
	var doc cargoDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// GetByBusiness retrieves all cargos owned by a business.
func (r *CargoRepository) GetByBusiness(ctx context.Context, businessID string) ([]*domain.Cargo, error) {
	return r.find(ctx, bson.M{"businessId": businessID})
}

// GetByDriver retrieves all cargos assigned to a driver.
func (r *CargoRepository) GetByDriver(ctx context.Context, driverID string) ([]*domain.Cargo, error) {
	return r.find(ctx, bson.M{"driverId": driverID})
}

// GetByCustomer retrieves all cargos destined for a customer.
func (r *CargoRepository) GetByCustomer(ctx context.Context, customerID string) ([]*domain.Cargo, error) {
	return r.find(ctx, bson.M{"customerId": customerID})
}

// GetUnassigned retrieves all cargos with no driver.
func (r *CargoRepository) GetUnassigned(ctx context.Context) ([]*domain.Cargo, error) {
	return r.find(ctx, bson.M{"driverId": ""})
}

// GetActiveByDriverID returns the driver's active (non-DELIVERED) cargo,
// or nil if the driver has none.
func (r *CargoRepository) GetActiveByDriverID(ctx context.Context, driverID string) (*domain.Cargo, error) {
	filter := bson.M{
		"driverId": driverID,
		"status":   bson.M{"$ne": string(domain.CargoStatusDelivered)},
	}

	var doc cargoDoc
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// Update replaces the mutable fields of an existing cargo.
func (r *CargoRepository) Update(ctx context.Context, cargo *domain.Cargo) error {
	update := bson.M{"$set": bson.M{
		"name":         cargo.Name,
		"type":         cargo.Type,
		"size":         string(cargo.Size),
		"weight":       cargo.Weight,
		"origin":       cargo.Origin,
		"destination":  cargo.Destination,
		"status":       string(cargo.Status),
		"location":     cargo.Location,
		"driverId":     cargo.DriverID,
		"deliveryDate": cargo.DeliveryDate,
		"updatedAt":    time.Now().UTC(),
	}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": cargo.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a cargo.
func (r *CargoRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetDriver assigns a driver and resets status to PENDING, starting a
// fresh assignment cycle.
func (r *CargoRepository) SetDriver(ctx context.Context, id, driverID string) error {
	update := bson.M{"$set": bson.M{
		"driverId":  driverID,
		"status":    string(domain.CargoStatusPending),
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

// ClaimUnassigned assigns a driver only if the cargo currently has none.
// The driverId filter makes the claim atomic: two drivers racing for the
// same cargo cannot both match.
func (r *CargoRepository) ClaimUnassigned(ctx context.Context, id, driverID string) error {
	filter := bson.M{"_id": id, "driverId": ""}
	update := bson.M{"$set": bson.M{
		"driverId":  driverID,
		"status":    string(domain.CargoStatusPending),
		"updatedAt": time.Now().UTC(),
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetStatus updates the status; deliveredAt is stamped as the delivery
// date when status is DELIVERED.
func (r *CargoRepository) SetStatus(ctx context.Context, id string, status domain.CargoStatus, deliveredAt time.Time) error {
	set := bson.M{
		"status":    string(status),
		"updatedAt": time.Now().UTC(),
	}
	if status == domain.CargoStatusDelivered {
		set["deliveryDate"] = deliveredAt
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetLocation updates the free-text location string.
func (r *CargoRepository) SetLocation(ctx context.Context, id, location string) error {
	update := bson.M{"$set": bson.M{
		"location":  location,
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

func (r *CargoRepository) find(ctx context.Context, filter bson.M) ([]*domain.Cargo, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cargos []*domain.Cargo
	for cursor.Next(ctx) {
		var doc cargoDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		cargos = append(cargos, doc.toDomain())
	}
	return cargos, cursor.Err()
}
