package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arora427/HomeVerse/internal/config"
	"github.com/arora427/HomeVerse/internal/models"
)

// IPropertyService defines the interface for property-related operations.
type IPropertyService interface {
	Create(ctx context.Context, ownerID primitive.ObjectID, params CreatePropertyParams) (*models.PropertyWithOwner, error)
	FindByID(ctx context.Context, propertyID primitive.ObjectID) (*models.PropertyWithOwner, error)
	Update(ctx context.Context, propertyID, callerID primitive.ObjectID, patch PropertyPatch, newImages []string) (*models.PropertyWithOwner, error)
	Delete(ctx context.Context, propertyID, callerID primitive.ObjectID) error
	List(ctx context.Context, filters PropertyFilters) (*PropertyPage, error)
}

// CreatePropertyParams contains write parameters for creating a property.
type CreatePropertyParams struct {
	Title        string
	Description  string
	Price        float64
	Location     string
	Bedrooms     int
	Bathrooms    int
	SquareFeet   int
	PropertyType models.PropertyType
	AgentName    string
	AgentAvatar  string
	Images       []string
	Videos       []string
}

// PropertyPatch is an explicit partial update: nil members are left
// unchanged, non-nil members are applied via a single merge.
type PropertyPatch struct {
	Title        *string
	Description  *string
	Price        *float64
	Location     *string
	Bedrooms     *int
	Bathrooms    *int
	SquareFeet   *int
	PropertyType *models.PropertyType
	AgentName    *string
	AgentAvatar  *string
	Status       *string
}

// PropertyFilters describes the recognized browse filters.
type PropertyFilters struct {
	PropertyType *models.PropertyType
	Location     string
	OwnerID      *primitive.ObjectID
	Page         int
	Limit        int
}

// PropertyPage is one page of filtered results plus pagination totals.
type PropertyPage struct {
	Properties  []models.PropertyWithOwner
	Total       int64
	TotalPages  int
	CurrentPage int
}

const propertiesCollection = "properties"

// propertyService implements IPropertyService.
type propertyService struct {
	db  *mongo.Database
	cfg *config.Config
}

// NewPropertyService creates a new PropertyService.
func NewPropertyService(db *mongo.Database, cfg *config.Config) IPropertyService {
	return &propertyService{db: db, cfg: cfg}
}

// validate checks the create parameters and reports per-field messages.
func (p CreatePropertyParams) validate() error {
	fields := fieldErrors{}
	if strings.TrimSpace(p.Title) == "" {
		fields.add("title", "Title is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		fields.add("description", "Description is required")
	}
	if p.Price < 0 {
		fields.add("price", "Price must be a positive number")
	}
	if strings.TrimSpace(p.Location) == "" {
		fields.add("location", "Location is required")
	}
	if p.Bedrooms < 0 {
		fields.add("bedrooms", "Bedrooms must be a positive integer")
	}
	if p.Bathrooms < 0 {
		fields.add("bathrooms", "Bathrooms must be a positive integer")
	}
	if p.SquareFeet < 0 {
		fields.add("squareFeet", "Square feet must be a positive integer")
	}
	if !p.PropertyType.IsValid() {
		fields.add("propertyType", "Property type must be rent or sale")
	}
	if strings.TrimSpace(p.AgentName) == "" {
		fields.add("agentName", "Agent name is required")
	}
	return fields.err()
}

// validate checks only the fields present in the patch.
func (p PropertyPatch) validate() error {
	fields := fieldErrors{}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		fields.add("title", "Title cannot be empty")
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		fields.add("description", "Description cannot be empty")
	}
	if p.Price != nil && *p.Price < 0 {
		fields.add("price", "Price must be a positive number")
	}
	if p.Location != nil && strings.TrimSpace(*p.Location) == "" {
		fields.add("location", "Location cannot be empty")
	}
	if p.Bedrooms != nil && *p.Bedrooms < 0 {
		fields.add("bedrooms", "Bedrooms must be a positive integer")
	}
	if p.Bathrooms != nil && *p.Bathrooms < 0 {
		fields.add("bathrooms", "Bathrooms must be a positive integer")
	}
	if p.SquareFeet != nil && *p.SquareFeet < 0 {
		fields.add("squareFeet", "Square feet must be a positive integer")
	}
	if p.PropertyType != nil && !p.PropertyType.IsValid() {
		fields.add("propertyType", "Property type must be rent or sale")
	}
	if p.AgentName != nil && strings.TrimSpace(*p.AgentName) == "" {
		fields.add("agentName", "Agent name cannot be empty")
	}
	return fields.err()
}

// setDoc converts the non-nil patch members into a $set document.
func (p PropertyPatch) setDoc() bson.M {
	set := bson.M{}
	if p.Title != nil {
		set["title"] = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		set["description"] = strings.TrimSpace(*p.Description)
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Location != nil {
		set["location"] = strings.TrimSpace(*p.Location)
	}
	if p.Bedrooms != nil {
		set["bedrooms"] = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		set["bathrooms"] = *p.Bathrooms
	}
	if p.SquareFeet != nil {
		set["square_feet"] = *p.SquareFeet
	}
	if p.PropertyType != nil {
		set["property_type"] = *p.PropertyType
	}
	if p.AgentName != nil {
		set["agent.name"] = strings.TrimSpace(*p.AgentName)
	}
	if p.AgentAvatar != nil {
		set["agent.avatar"] = *p.AgentAvatar
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	return set
}

// Create validates and persists a new property owned by ownerID.
func (s *propertyService) Create(ctx context.Context, ownerID primitive.ObjectID, params CreatePropertyParams) (*models.PropertyWithOwner, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	avatar := params.AgentAvatar
	if avatar == "" {
		avatar = s.cfg.DefaultAgentAvatar
	}
	images := params.Images
	if images == nil {
		images = []string{}
	}
	videos := params.Videos
	if videos == nil {
		videos = []string{}
	}

	now := time.Now().UTC()
	property := &models.Property{
		ID:           primitive.NewObjectID(),
		Title:        strings.TrimSpace(params.Title),
		Description:  strings.TrimSpace(params.Description),
		Price:        params.Price,
		Location:     strings.TrimSpace(params.Location),
		Bedrooms:     params.Bedrooms,
		Bathrooms:    params.Bathrooms,
		SquareFeet:   params.SquareFeet,
		PropertyType: params.PropertyType,
		Images:       images,
		Videos:       videos,
		OwnerID:      ownerID,
		Agent: models.Agent{
			Name:   strings.TrimSpace(params.AgentName),
			Avatar: avatar,
		},
		Status:    "available",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.db.Collection(propertiesCollection).InsertOne(ctx, property); err != nil {
		return nil, fmt.Errorf("error creating property for owner %s: %w", ownerID.Hex(), err)
	}

	return s.joinOwner(ctx, property)
}

// FindByID returns the property with its owner's public fields joined in.
func (s *propertyService) FindByID(ctx context.Context, propertyID primitive.ObjectID) (*models.PropertyWithOwner, error) {
	var property models.Property

	err := s.db.Collection(propertiesCollection).FindOne(ctx, bson.M{"_id": propertyID}).Decode(&property)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding property by ID %s: %w", propertyID.Hex(), err)
	}

	return s.joinOwner(ctx, &property)
}

// Update applies the patch to a property owned by callerID. New images are
// always appended to the existing sequence, never replacing it.
func (s *propertyService) Update(ctx context.Context, propertyID, callerID primitive.ObjectID, patch PropertyPatch, newImages []string) (*models.PropertyWithOwner, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}

	var existing models.Property
	err := s.db.Collection(propertiesCollection).FindOne(ctx, bson.M{"_id": propertyID}).Decode(&existing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding property %s for update: %w", propertyID.Hex(), err)
	}
	if !CanMutate(callerID, existing.OwnerID) {
		return nil, ErrForbidden
	}

	set := patch.setDoc()
	set["updated_at"] = time.Now().UTC()
	update := bson.M{"$set": set}
	if len(newImages) > 0 {
		update["$push"] = bson.M{"images": bson.M{"$each": newImages}}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Property
	err = s.db.Collection(propertiesCollection).FindOneAndUpdate(ctx, bson.M{"_id": propertyID}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Deleted between the ownership check and the write.
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error updating property %s: %w", propertyID.Hex(), err)
	}

	return s.joinOwner(ctx, &updated)
}

// Delete permanently removes a property owned by callerID. Contact records
// referencing the property are intentionally left in place.
func (s *propertyService) Delete(ctx context.Context, propertyID, callerID primitive.ObjectID) error {
	var existing models.Property
	err := s.db.Collection(propertiesCollection).FindOne(ctx, bson.M{"_id": propertyID}).Decode(&existing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("error finding property %s for delete: %w", propertyID.Hex(), err)
	}
	if !CanMutate(callerID, existing.OwnerID) {
		return ErrForbidden
	}

	if _, err := s.db.Collection(propertiesCollection).DeleteOne(ctx, bson.M{"_id": propertyID}); err != nil {
		return fmt.Errorf("error deleting property %s: %w", propertyID.Hex(), err)
	}
	return nil
}

// List returns one page of properties matching the filters, newest first.
// An out-of-range page yields an empty result set, not an error.
func (s *propertyService) List(ctx context.Context, filters PropertyFilters) (*PropertyPage, error) {
	page := filters.Page
	if page < 1 {
		page = 1
	}
	limit := filters.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultPageSize
	}
	if limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}

	filter := bson.M{}
	if filters.PropertyType != nil {
		filter["property_type"] = *filters.PropertyType
	}
	if filters.Location != "" {
		filter["location"] = primitive.Regex{Pattern: regexp.QuoteMeta(filters.Location), Options: "i"}
	}
	if filters.OwnerID != nil {
		filter["owner"] = *filters.OwnerID
	}

	collection := s.db.Collection(propertiesCollection)

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error counting properties: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(page-1) * int64(limit)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("error decoding properties: %w", err)
	}

	joined, err := s.joinOwners(ctx, properties)
	if err != nil {
		return nil, err
	}

	return &PropertyPage{
		Properties:  joined,
		Total:       total,
		TotalPages:  totalPages(total, limit),
		CurrentPage: page,
	}, nil
}

// totalPages computes ceil(total / limit).
func totalPages(total int64, limit int) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// joinOwner attaches the owner's public fields to a single property.
func (s *propertyService) joinOwner(ctx context.Context, property *models.Property) (*models.PropertyWithOwner, error) {
	var owner models.User
	err := s.db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": property.OwnerID}).Decode(&owner)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("error finding owner %s: %w", property.OwnerID.Hex(), err)
	}
	return &models.PropertyWithOwner{
		Property: *property,
		Owner:    owner.PublicInfo(),
	}, nil
}

// joinOwners attaches owner public fields to a batch of properties with a
// single users query.
func (s *propertyService) joinOwners(ctx context.Context, properties []models.Property) ([]models.PropertyWithOwner, error) {
	joined := make([]models.PropertyWithOwner, 0, len(properties))
	if len(properties) == 0 {
		return joined, nil
	}

	ownerIDs := make([]primitive.ObjectID, 0, len(properties))
	seen := make(map[primitive.ObjectID]bool, len(properties))
	for _, p := range properties {
		if !seen[p.OwnerID] {
			seen[p.OwnerID] = true
			ownerIDs = append(ownerIDs, p.OwnerID)
		}
	}

	cursor, err := s.db.Collection(usersCollection).Find(ctx, bson.M{"_id": bson.M{"$in": ownerIDs}})
	if err != nil {
		return nil, fmt.Errorf("error finding property owners: %w", err)
	}
	defer cursor.Close(ctx)

	var owners []models.User
	if err := cursor.All(ctx, &owners); err != nil {
		return nil, fmt.Errorf("error decoding property owners: %w", err)
	}

	ownersByID := make(map[primitive.ObjectID]models.OwnerInfo, len(owners))
	for i := range owners {
		ownersByID[owners[i].ID] = owners[i].PublicInfo()
	}

	for _, p := range properties {
		joined = append(joined, models.PropertyWithOwner{
			Property: p,
			Owner:    ownersByID[p.OwnerID],
		})
	}
	return joined, nil
}
