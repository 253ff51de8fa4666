package services

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arora427/HomeVerse/internal/config"
	"github.com/arora427/HomeVerse/internal/db"
	"github.com/arora427/HomeVerse/internal/models"
)

var testMongoURI string

func init() {
	godotenv.Load("../../.env")
	testMongoURI = os.Getenv("MONGO_URI_TEST")
}

// setupTestDB connects to the test MongoDB instance and drops the given
// collections for a clean state. Tests calling it are skipped when
// MONGO_URI_TEST is not set.
func setupTestDB(t *testing.T, collections ...string) *mongo.Database {
	if testMongoURI == "" {
		t.Skip("MONGO_URI_TEST not set; skipping integration test")
	}

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(testMongoURI))
	require.NoError(t, err, "Failed to connect to MongoDB")
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	database := client.Database("homeverse_test")
	for _, collection := range collections {
		_ = database.Collection(collection).Drop(context.Background())
	}
	require.NoError(t, db.EnsureIndexes(context.Background(), database))
	return database
}

func testConfig() *config.Config {
	return &config.Config{
		DefaultAgentAvatar: "/assets/images/author.jpg",
		DefaultPageSize:    10,
		MaxPageSize:        100,
	}
}

func registerTestUser(t *testing.T, svc IUserService, email string) *models.User {
	user, err := svc.Register(context.Background(), RegisterParams{
		Name:     "Test User",
		Email:    email,
		Phone:    "9876543210",
		Password: "password123",
	})
	require.NoError(t, err)
	return user
}

func createTestProperty(t *testing.T, svc IPropertyService, ownerID primitive.ObjectID, title string) *models.PropertyWithOwner {
	property, err := svc.Create(context.Background(), ownerID, CreatePropertyParams{
		Title:        title,
		Description:  "A lovely place to live",
		Price:        25000,
		Location:     "Bengaluru",
		Bedrooms:     2,
		Bathrooms:    2,
		SquareFeet:   1100,
		PropertyType: models.PropertyTypeRent,
		AgentName:    "Asha Verma",
	})
	require.NoError(t, err)
	return property
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	database := setupTestDB(t, usersCollection)
	svc := NewUserService(database)
	ctx := context.Background()

	user := registerTestUser(t, svc, "Alice@Example.COM")
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "password123", user.PasswordHash)

	// Login is case-insensitive on email
	loggedIn, err := svc.Login(ctx, "ALICE@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, err = svc.Login(ctx, "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_DuplicateEmail(t *testing.T) {
	database := setupTestDB(t, usersCollection)
	svc := NewUserService(database)

	registerTestUser(t, svc, "bob@example.com")

	_, err := svc.Register(context.Background(), RegisterParams{
		Name:     "Other Bob",
		Email:    "BOB@example.com",
		Phone:    "9876543211",
		Password: "password456",
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserService_RegisterValidation(t *testing.T) {
	database := setupTestDB(t, usersCollection)
	svc := NewUserService(database)

	_, err := svc.Register(context.Background(), RegisterParams{
		Name:     "",
		Email:    "not-an-email",
		Phone:    "",
		Password: "short",
	})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "name")
	assert.Contains(t, vErr.Fields, "email")
	assert.Contains(t, vErr.Fields, "phone")
	assert.Contains(t, vErr.Fields, "password")
}

func TestPropertyService_CreateAndFind(t *testing.T) {
	database := setupTestDB(t, usersCollection, propertiesCollection)
	userSvc := NewUserService(database)
	propSvc := NewPropertyService(database, testConfig())

	owner := registerTestUser(t, userSvc, "owner@example.com")
	created := createTestProperty(t, propSvc, owner.ID, "2BHK Apartment")

	assert.Equal(t, "available", created.Status)
	assert.Equal(t, "/assets/images/author.jpg", created.Agent.Avatar)
	assert.Equal(t, owner.ID, created.Owner.ID)
	assert.Equal(t, "Test User", created.Owner.Name)
	assert.NotNil(t, created.Images)

	found, err := propSvc.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "2BHK Apartment", found.Title)

	_, err = propSvc.FindByID(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPropertyService_UpdateOwnership(t *testing.T) {
	database := setupTestDB(t, usersCollection, propertiesCollection)
	userSvc := NewUserService(database)
	propSvc := NewPropertyService(database, testConfig())
	ctx := context.Background()

	owner := registerTestUser(t, userSvc, "owner@example.com")
	stranger := registerTestUser(t, userSvc, "stranger@example.com")
	property := createTestProperty(t, propSvc, owner.ID, "2BHK Apartment")

	newTitle := "Renovated 2BHK Apartment"
	patch := PropertyPatch{Title: &newTitle}

	_, err := propSvc.Update(ctx, property.ID, stranger.ID, patch, nil)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := propSvc.Update(ctx, property.ID, owner.ID, patch, nil)
	require.NoError(t, err)
	assert.Equal(t, "Renovated 2BHK Apartment", updated.Title)
	assert.Equal(t, "A lovely place to live", updated.Description)

	_, err = propSvc.Update(ctx, primitive.NewObjectID(), owner.ID, patch, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPropertyService_UpdateAppendsImages(t *testing.T) {
	database := setupTestDB(t, usersCollection, propertiesCollection)
	userSvc := NewUserService(database)
	propSvc := NewPropertyService(database, testConfig())
	ctx := context.Background()

	owner := registerTestUser(t, userSvc, "owner@example.com")
	property := createTestProperty(t, propSvc, owner.ID, "2BHK Apartment")

	first, err := propSvc.Update(ctx, property.ID, owner.ID, PropertyPatch{}, []string{"/uploads/a.jpg"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/a.jpg"}, first.Images)

	second, err := propSvc.Update(ctx, property.ID, owner.ID, PropertyPatch{}, []string{"/uploads/b.jpg", "/uploads/c.jpg"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/a.jpg", "/uploads/b.jpg", "/uploads/c.jpg"}, second.Images)
}

func TestPropertyService_DeleteOwnership(t *testing.T) {
	database := setupTestDB(t, usersCollection, propertiesCollection)
	userSvc := NewUserService(database)
	propSvc := NewPropertyService(database, testConfig())
	ctx := context.Background()

	owner := registerTestUser(t, userSvc, "owner@example.com")
	stranger := registerTestUser(t, userSvc, "stranger@example.com")
	property := createTestProperty(t, propSvc, owner.ID, "2BHK Apartment")

	assert.ErrorIs(t, propSvc.Delete(ctx, property.ID, stranger.ID), ErrForbidden)

	require.NoError(t, propSvc.Delete(ctx, property.ID, owner.ID))

	_, err := propSvc.FindByID(ctx, property.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, propSvc.Delete(ctx, property.ID, owner.ID), ErrNotFound)
}

func TestPropertyService_ListPagination(t *testing.T) {
	database := setupTestDB(t, usersCollection, propertiesCollection)
	userSvc := NewUserService(database)
	propSvc := NewPropertyService(database, testConfig())
	ctx := context.Background()

	owner := registerTestUser(t, userSvc, "owner@example.com")
	for i := 0; i < 25; i++ {
		createTestProperty(t, propSvc, owner.ID, fmt.Sprintf("Listing %02d", i))
	}

	page1, err := propSvc.List(ctx, PropertyFilters{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page1.Properties, 10)
	assert.Equal(t, int64(25), page1.Total)
	assert.Equal(t, 3, page1.TotalPages)
	assert.Equal(t, 1, page1.CurrentPage)

	page3, err := propSvc.List(ctx, PropertyFilters{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page3.Properties, 5)

	// Out-of-range pages are empty, not errors
	page4, err := propSvc.List(ctx, PropertyFilters{Page: 4, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page4.Properties)
	assert.Equal(t, int64(25), page4.Total)
	assert.Equal(t, 4, page4.CurrentPage)
}

func TestPropertyService_ListFilters(t *testing.T) {
	database := setupTestDB(t, usersCollection, propertiesCollection)
	userSvc := NewUserService(database)
	propSvc := NewPropertyService(database, testConfig())
	ctx := context.Background()

	alice := registerTestUser(t, userSvc, "alice@example.com")
	bob := registerTestUser(t, userSvc, "bob@example.com")

	createTestProperty(t, propSvc, alice.ID, "Alice Rental")
	saleProp, err := propSvc.Create(ctx, bob.ID, CreatePropertyParams{
		Title:        "Bob Sale",
		Description:  "House for sale",
		Price:        9500000,
		Location:     "Mumbai",
		Bedrooms:     3,
		Bathrooms:    3,
		SquareFeet:   1800,
		PropertyType: models.PropertyTypeSale,
		AgentName:    "Ravi Kumar",
	})
	require.NoError(t, err)

	saleType := models.PropertyTypeSale
	byType, err := propSvc.List(ctx, PropertyFilters{PropertyType: &saleType})
	require.NoError(t, err)
	require.Len(t, byType.Properties, 1)
	assert.Equal(t, saleProp.ID, byType.Properties[0].ID)

	// Location matching is a case-insensitive substring
	byLocation, err := propSvc.List(ctx, PropertyFilters{Location: "mum"})
	require.NoError(t, err)
	require.Len(t, byLocation.Properties, 1)
	assert.Equal(t, "Mumbai", byLocation.Properties[0].Location)

	byOwner, err := propSvc.List(ctx, PropertyFilters{OwnerID: &alice.ID})
	require.NoError(t, err)
	require.Len(t, byOwner.Properties, 1)
	assert.Equal(t, "Alice Rental", byOwner.Properties[0].Title)
	assert.Equal(t, alice.ID, byOwner.Properties[0].Owner.ID)
}

func TestContactService_CreateAndList(t *testing.T) {
	database := setupTestDB(t, usersCollection, propertiesCollection, contactsCollection)
	userSvc := NewUserService(database)
	propSvc := NewPropertyService(database, testConfig())
	contactSvc := NewContactService(database)
	ctx := context.Background()

	owner := registerTestUser(t, userSvc, "owner@example.com")
	property := createTestProperty(t, propSvc, owner.ID, "2BHK Apartment")

	contact, err := contactSvc.Create(ctx, CreateContactParams{
		PropertyID: property.ID,
		Name:       "Priya Sharma",
		Email:      "priya@example.com",
		Phone:      "9876543210",
		Message:    "Is this still available?",
	})
	require.NoError(t, err)
	assert.Equal(t, "+91-9876543210", contact.Phone)

	contacts, err := contactSvc.List(ctx, &property.ID)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, contact.ID, contacts[0].ID)
	require.NotNil(t, contacts[0].Property)
	assert.Equal(t, "2BHK Apartment", contacts[0].Property.Title)
	assert.Equal(t, "Bengaluru", contacts[0].Property.Location)

	all, err := contactSvc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestContactService_MissingProperty(t *testing.T) {
	database := setupTestDB(t, usersCollection, propertiesCollection, contactsCollection)
	contactSvc := NewContactService(database)

	_, err := contactSvc.Create(context.Background(), CreateContactParams{
		PropertyID: primitive.NewObjectID(),
		Name:       "Priya Sharma",
		Email:      "priya@example.com",
		Phone:      "9876543210",
		Message:    "Is this still available?",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContactService_Validation(t *testing.T) {
	database := setupTestDB(t, usersCollection, propertiesCollection, contactsCollection)
	contactSvc := NewContactService(database)

	_, err := contactSvc.Create(context.Background(), CreateContactParams{
		PropertyID: primitive.NewObjectID(),
		Name:       "",
		Email:      "bad-email",
		Phone:      "12345",
		Message:    "",
	})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "name")
	assert.Contains(t, vErr.Fields, "email")
	assert.Contains(t, vErr.Fields, "phone")
	assert.Contains(t, vErr.Fields, "message")
}

func TestContactService_OrphanedAfterPropertyDelete(t *testing.T) {
	database := setupTestDB(t, usersCollection, propertiesCollection, contactsCollection)
	userSvc := NewUserService(database)
	propSvc := NewPropertyService(database, testConfig())
	contactSvc := NewContactService(database)
	ctx := context.Background()

	owner := registerTestUser(t, userSvc, "owner@example.com")
	property := createTestProperty(t, propSvc, owner.ID, "2BHK Apartment")

	_, err := contactSvc.Create(ctx, CreateContactParams{
		PropertyID: property.ID,
		Name:       "Priya Sharma",
		Email:      "priya@example.com",
		Phone:      "9876543210",
		Message:    "Is this still available?",
	})
	require.NoError(t, err)

	require.NoError(t, propSvc.Delete(ctx, property.ID, owner.ID))

	// Inquiry records survive the listing they reference
	contacts, err := contactSvc.List(ctx, &property.ID)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Nil(t, contacts[0].Property)
}
