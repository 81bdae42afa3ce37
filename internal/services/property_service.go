package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ren89/property-listing-app/internal/db"
	"github.com/ren89/property-listing-app/internal/models"
	"github.com/ren89/property-listing-app/internal/storage"
)

// IPropertyService defines the interface for property-listing operations.
// This is the listings collaborator the optimistic store loads from.
type IPropertyService interface {
	ListProperties(ctx context.Context) ([]models.PropertyListing, error)
	GetPropertyByID(ctx context.Context, id string) (*models.PropertyListing, error)
	CreateProperty(ctx context.Context, data models.CreatePropertyData) (*models.PropertyListing, error)
	UpdateProperty(ctx context.Context, id string, data models.UpdatePropertyData) (*models.PropertyListing, error)
	DeleteProperty(ctx context.Context, id string) error
}

const propertiesCollection = "property_listings"

// propertyService implements IPropertyService.
type propertyService struct {
	db      *mongo.Database
	storage storage.IBlobStorage // for the image cascade on delete
}

// NewPropertyService creates a new PropertyService.
func NewPropertyService(db *mongo.Database, blobStorage storage.IBlobStorage) IPropertyService {
	return &propertyService{db: db, storage: blobStorage}
}

// ListProperties returns the full collection ordered by creation time
// descending, the order the browse and admin views consume.
func (s *propertyService) ListProperties(ctx context.Context) ([]models.PropertyListing, error) {
	collection := s.db.Collection(propertiesCollection)
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query property listings: %w", err)
	}
	defer cursor.Close(ctx)

	var listings []models.PropertyListing
	if err = cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode property listings: %w", err)
	}
	return listings, nil
}

// GetPropertyByID finds a listing by its ID.
// Returns mongo.ErrNoDocuments when absent.
func (s *propertyService) GetPropertyByID(ctx context.Context, id string) (*models.PropertyListing, error) {
	var listing models.PropertyListing
	collection := s.db.Collection(propertiesCollection)

	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&listing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("error finding property %s: %w", id, err)
	}
	return &listing, nil
}

// CreateProperty inserts a new listing with a server-assigned id and
// timestamps. The returned record is authoritative and safe to prepend
// into a view session's local mirror.
func (s *propertyService) CreateProperty(ctx context.Context, data models.CreatePropertyData) (*models.PropertyListing, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}

	collection := s.db.Collection(propertiesCollection)
	now := time.Now().UTC()

	var newListing *models.PropertyListing

	operation := func() error {
		newListing = &models.PropertyListing{
			ID:           uuid.NewString(), // regenerated on each attempt
			Title:        data.Title,
			Description:  data.Description,
			Location:     data.Location,
			Price:        data.Price,
			PropertyType: data.PropertyType,
			Status:       data.Status,
			Images:       data.Images,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		_, insertErr := collection.InsertOne(ctx, newListing)
		return insertErr
	}

	if err := db.Try(operation); err != nil {
		listingIDStr := "<unknown>"
		if newListing != nil {
			listingIDStr = newListing.ID
		}
		return nil, fmt.Errorf("failed to insert property listing (last attempted id: %s) after multiple retries: %w",
			listingIDStr, err)
	}

	return newListing, nil
}

// UpdateProperty merges the provided fields into a listing and stamps
// updated_at. Returns the updated document.
func (s *propertyService) UpdateProperty(ctx context.Context, id string, data models.UpdatePropertyData) (*models.PropertyListing, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	if data.Empty() {
		return nil, fmt.Errorf("no valid fields provided for update")
	}

	collection := s.db.Collection(propertiesCollection)

	set := data.SetDocument()
	set["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.PropertyListing
	err := collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("failed to update property %s: %w", id, err)
	}

	return &updated, nil
}

// DeleteProperty removes a listing and cascades to its stored images.
// The record is gone once the document delete succeeds; an image cleanup
// failure is logged, not surfaced, matching the record-first semantics of
// the admin delete action.
func (s *propertyService) DeleteProperty(ctx context.Context, id string) error {
	collection := s.db.Collection(propertiesCollection)

	// Fetch the image list before deleting the document.
	var listing models.PropertyListing
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&listing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return mongo.ErrNoDocuments
		}
		return fmt.Errorf("error finding property %s for deletion: %w", id, err)
	}

	result, err := collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete property %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	if len(listing.Images) > 0 && s.storage != nil {
		if err := s.storage.Delete(ctx, listing.Images); err != nil {
			log.Printf("WARN: property %s deleted but image cleanup failed: %v", id, err)
		}
	}

	return nil
}
