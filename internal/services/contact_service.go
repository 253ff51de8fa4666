package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arora427/HomeVerse/internal/models"
)

// IContactService defines the interface for contact inquiry operations.
type IContactService interface {
	Create(ctx context.Context, params CreateContactParams) (*models.Contact, error)
	List(ctx context.Context, propertyID *primitive.ObjectID) ([]models.ContactWithProperty, error)
}

// CreateContactParams contains write parameters for submitting an inquiry.
type CreateContactParams struct {
	PropertyID primitive.ObjectID
	Name       string
	Email      string
	Phone      string
	Message    string
}

const contactsCollection = "contacts"

// contactService implements IContactService.
type contactService struct {
	db *mongo.Database
}

// NewContactService creates a new ContactService.
func NewContactService(db *mongo.Database) IContactService {
	return &contactService{db: db}
}

// Create validates the inquiry, checks that the referenced property exists
// and persists the record with the phone number in country-code form.
func (s *contactService) Create(ctx context.Context, params CreateContactParams) (*models.Contact, error) {
	fields := fieldErrors{}
	if strings.TrimSpace(params.Name) == "" {
		fields.add("name", "Name is required")
	}
	if !isValidEmail(params.Email) {
		fields.add("email", "Valid email is required")
	}
	if !isValidMobile(params.Phone) {
		fields.add("phone", "Valid phone number is required (10 digits starting with 6-9)")
	}
	if strings.TrimSpace(params.Message) == "" {
		fields.add("message", "Message is required")
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	// Existence is validated here, not enforced by a foreign key: a property
	// deleted later leaves its contacts orphaned.
	count, err := s.db.Collection(propertiesCollection).CountDocuments(ctx, bson.M{"_id": params.PropertyID})
	if err != nil {
		return nil, fmt.Errorf("error checking property %s: %w", params.PropertyID.Hex(), err)
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	contact := &models.Contact{
		ID:         primitive.NewObjectID(),
		PropertyID: params.PropertyID,
		Name:       strings.TrimSpace(params.Name),
		Email:      strings.TrimSpace(params.Email),
		Phone:      normalizeMobile(params.Phone),
		Message:    strings.TrimSpace(params.Message),
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := s.db.Collection(contactsCollection).InsertOne(ctx, contact); err != nil {
		return nil, fmt.Errorf("error creating contact for property %s: %w", params.PropertyID.Hex(), err)
	}

	return contact, nil
}

// List returns inquiries, optionally filtered by property, newest first, each
// carrying a title/location summary of the referenced listing.
func (s *contactService) List(ctx context.Context, propertyID *primitive.ObjectID) ([]models.ContactWithProperty, error) {
	filter := bson.M{}
	if propertyID != nil {
		filter["property_id"] = *propertyID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.db.Collection(contactsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing contacts: %w", err)
	}
	defer cursor.Close(ctx)

	contacts := []models.Contact{}
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, fmt.Errorf("error decoding contacts: %w", err)
	}
	return s.joinProperties(ctx, contacts)
}

// joinProperties attaches listing summaries to a batch of contacts with a
// single properties query. Contacts referencing deleted listings keep a nil
// summary.
func (s *contactService) joinProperties(ctx context.Context, contacts []models.Contact) ([]models.ContactWithProperty, error) {
	joined := make([]models.ContactWithProperty, 0, len(contacts))
	if len(contacts) == 0 {
		return joined, nil
	}

	propertyIDs := make([]primitive.ObjectID, 0, len(contacts))
	seen := make(map[primitive.ObjectID]bool, len(contacts))
	for _, c := range contacts {
		if !seen[c.PropertyID] {
			seen[c.PropertyID] = true
			propertyIDs = append(propertyIDs, c.PropertyID)
		}
	}

	opts := options.Find().SetProjection(bson.M{"title": 1, "location": 1})
	cursor, err := s.db.Collection(propertiesCollection).Find(ctx, bson.M{"_id": bson.M{"$in": propertyIDs}}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding contact properties: %w", err)
	}
	defer cursor.Close(ctx)

	var refs []models.PropertyRef
	if err := cursor.All(ctx, &refs); err != nil {
		return nil, fmt.Errorf("error decoding contact properties: %w", err)
	}

	refsByID := make(map[primitive.ObjectID]models.PropertyRef, len(refs))
	for _, ref := range refs {
		refsByID[ref.ID] = ref
	}

	for _, c := range contacts {
		entry := models.ContactWithProperty{Contact: c}
		if ref, ok := refsByID[c.PropertyID]; ok {
			refCopy := ref
			entry.Property = &refCopy
		}
		joined = append(joined, entry)
	}
	return joined, nil
}
