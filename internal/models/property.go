package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PropertyType enumerates the offer kind of a property.
type PropertyType string

const (
	PropertyTypeRent PropertyType = "rent"
	PropertyTypeSale PropertyType = "sale"
)

// IsValid reports whether the property type is one of the known enum values.
func (t PropertyType) IsValid() bool {
	return t == PropertyTypeRent || t == PropertyTypeSale
}

// Agent holds the denormalized contact card shown on a property listing.
type Agent struct {
	Name   string `bson:"name" json:"name"`
	Avatar string `bson:"avatar" json:"avatar"`
}

// Property represents a real-estate listing owned by exactly one user.
type Property struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Price        float64            `bson:"price" json:"price"`
	Location     string             `bson:"location" json:"location"`
	Bedrooms     int                `bson:"bedrooms" json:"bedrooms"`
	Bathrooms    int                `bson:"bathrooms" json:"bathrooms"`
	SquareFeet   int                `bson:"square_feet" json:"squareFeet"`
	PropertyType PropertyType       `bson:"property_type" json:"propertyType"`
	Images       []string           `bson:"images" json:"images"`
	Videos       []string           `bson:"videos" json:"videos"`
	OwnerID      primitive.ObjectID `bson:"owner" json:"-"`
	Agent        Agent              `bson:"agent" json:"agent"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// PropertyWithOwner is a property joined with its owner's public fields.
// The owner's password hash never leaves the users collection.
type PropertyWithOwner struct {
	Property `bson:",inline"`
	Owner    OwnerInfo `bson:"owner_info" json:"owner"`
}
