package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact represents an inquiry submitted by a visitor against a property.
// Contacts are immutable once created and survive deletion of the property
// they reference.
type Contact struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PropertyID primitive.ObjectID `bson:"property_id" json:"propertyId"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Phone      string             `bson:"phone" json:"phone"`
	Message    string             `bson:"message" json:"message"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

// PropertyRef is the listing summary attached to inquiry records when listed.
type PropertyRef struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Title    string             `bson:"title" json:"title"`
	Location string             `bson:"location" json:"location"`
}

// ContactWithProperty is a contact joined with a summary of the property it
// references. Property is nil when the listing has since been deleted.
type ContactWithProperty struct {
	Contact  `bson:",inline"`
	Property *PropertyRef `bson:"property_ref" json:"property"`
}
