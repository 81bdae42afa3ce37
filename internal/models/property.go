package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// PropertyType classifies a listing. The set is closed: no other values are
// permitted anywhere in the system.
type PropertyType string

const (
	PropertyTypeApartment  PropertyType = "Apartment"
	PropertyTypeHouse      PropertyType = "House"
	PropertyTypeCommercial PropertyType = "Commercial"
)

// Valid reports whether the type is one of the closed enumeration values.
func (t PropertyType) Valid() bool {
	switch t {
	case PropertyTypeApartment, PropertyTypeHouse, PropertyTypeCommercial:
		return true
	}
	return false
}

// BadgeColor returns the presentation color token for the type.
// Exhaustive switch so a new enum value fails loudly in tests rather than
// silently falling through a lookup table.
func (t PropertyType) BadgeColor() string {
	switch t {
	case PropertyTypeApartment:
		return "purple"
	case PropertyTypeHouse:
		return "orange"
	case PropertyTypeCommercial:
		return "cyan"
	default:
		return "gray"
	}
}

// PropertyStatus is the sale/rental state of a listing. Closed enumeration.
type PropertyStatus string

const (
	PropertyStatusForRent PropertyStatus = "ForRent"
	PropertyStatusForSale PropertyStatus = "ForSale"
)

// Valid reports whether the status is one of the closed enumeration values.
func (s PropertyStatus) Valid() bool {
	switch s {
	case PropertyStatusForRent, PropertyStatusForSale:
		return true
	}
	return false
}

// BadgeColor returns the presentation color token for the status.
func (s PropertyStatus) BadgeColor() string {
	switch s {
	case PropertyStatusForRent:
		return "green"
	case PropertyStatusForSale:
		return "blue"
	default:
		return "gray"
	}
}

// PropertyListing represents a single property record (rental or sale).
// The backend is the system of record; in-memory copies held by a view
// session are a best-effort mirror.
type PropertyListing struct {
	ID           string         `bson:"_id,omitempty" json:"id,omitempty"`
	Title        string         `bson:"title" json:"title"`
	Description  string         `bson:"description" json:"description"`
	Location     string         `bson:"location" json:"location"`
	Price        float64        `bson:"price" json:"price"`
	PropertyType PropertyType   `bson:"property_type" json:"property_type"`
	Status       PropertyStatus `bson:"status" json:"status"`
	Images       []string       `bson:"image,omitempty" json:"image,omitempty"` // public URLs; may be empty
	CreatedAt    time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `bson:"updated_at" json:"updated_at"`
}

// CreatePropertyData carries the fields for a new listing. The server
// assigns id and timestamps.
type CreatePropertyData struct {
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Location     string         `json:"location"`
	Price        float64        `json:"price"`
	PropertyType PropertyType   `json:"property_type"`
	Status       PropertyStatus `json:"status"`
	Images       []string       `json:"image,omitempty"`
}

// Validate checks the closed-enum and price invariants.
func (d CreatePropertyData) Validate() error {
	if !d.PropertyType.Valid() {
		return fmt.Errorf("invalid property type %q", d.PropertyType)
	}
	if !d.Status.Valid() {
		return fmt.Errorf("invalid property status %q", d.Status)
	}
	if d.Price < 0 {
		return fmt.Errorf("price must be non-negative, got %v", d.Price)
	}
	return nil
}

// UpdatePropertyData carries a partial update: nil fields are untouched.
type UpdatePropertyData struct {
	Title        *string         `json:"title,omitempty"`
	Description  *string         `json:"description,omitempty"`
	Location     *string         `json:"location,omitempty"`
	Price        *float64        `json:"price,omitempty"`
	PropertyType *PropertyType   `json:"property_type,omitempty"`
	Status       *PropertyStatus `json:"status,omitempty"`
	Images       *[]string       `json:"image,omitempty"`
}

// Validate checks the provided fields against the listing invariants.
func (d UpdatePropertyData) Validate() error {
	if d.PropertyType != nil && !d.PropertyType.Valid() {
		return fmt.Errorf("invalid property type %q", *d.PropertyType)
	}
	if d.Status != nil && !d.Status.Valid() {
		return fmt.Errorf("invalid property status %q", *d.Status)
	}
	if d.Price != nil && *d.Price < 0 {
		return fmt.Errorf("price must be non-negative, got %v", *d.Price)
	}
	return nil
}

// Empty reports whether no field is set.
func (d UpdatePropertyData) Empty() bool {
	return d.Title == nil && d.Description == nil && d.Location == nil &&
		d.Price == nil && d.PropertyType == nil && d.Status == nil && d.Images == nil
}

// Apply merges the provided fields into the listing in place. Used by the
// optimistic store; timestamps are left alone because the server assigns
// updated_at on the authoritative record.
func (d UpdatePropertyData) Apply(p *PropertyListing) {
	if d.Title != nil {
		p.Title = *d.Title
	}
	if d.Description != nil {
		p.Description = *d.Description
	}
	if d.Location != nil {
		p.Location = *d.Location
	}
	if d.Price != nil {
		p.Price = *d.Price
	}
	if d.PropertyType != nil {
		p.PropertyType = *d.PropertyType
	}
	if d.Status != nil {
		p.Status = *d.Status
	}
	if d.Images != nil {
		p.Images = *d.Images
	}
}

// SetDocument builds the bson $set document for the provided fields.
// updated_at is not included; the service stamps it.
func (d UpdatePropertyData) SetDocument() bson.M {
	set := bson.M{}
	if d.Title != nil {
		set["title"] = *d.Title
	}
	if d.Description != nil {
		set["description"] = *d.Description
	}
	if d.Location != nil {
		set["location"] = *d.Location
	}
	if d.Price != nil {
		set["price"] = *d.Price
	}
	if d.PropertyType != nil {
		set["property_type"] = *d.PropertyType
	}
	if d.Status != nil {
		set["status"] = *d.Status
	}
	if d.Images != nil {
		set["image"] = *d.Images
	}
	return set
}
