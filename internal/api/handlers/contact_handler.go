package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arora427/HomeVerse/internal/models"
	"github.com/arora427/HomeVerse/internal/services"
)

// ContactHandler handles contact inquiry submissions and listing.
type ContactHandler struct {
	contactService services.IContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService services.IContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

type createContactRequest struct {
	PropertyID string `json:"propertyId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
}

// CreateContact handles POST /api/contact
func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req createContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	propertyID, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		// Malformed ids are indistinguishable from absent ones.
		c.JSON(http.StatusNotFound, gin.H{"message": "Property not found"})
		return
	}

	contact, err := h.contactService.Create(c.Request.Context(), services.CreateContactParams{
		PropertyID: propertyID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Message:    req.Message,
	})
	if err != nil {
		respondServiceError(c, err, "Property not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Contact request submitted successfully",
		"contact": contact,
	})
}

// ListContacts handles GET /api/contact
func (h *ContactHandler) ListContacts(c *gin.Context) {
	var propertyID *primitive.ObjectID
	if idStr := c.Query("propertyId"); idStr != "" {
		parsed, err := primitive.ObjectIDFromHex(idStr)
		if err != nil {
			// A malformed filter matches nothing, same as an absent property.
			c.JSON(http.StatusOK, []models.ContactWithProperty{})
			return
		}
		propertyID = &parsed
	}

	contacts, err := h.contactService.List(c.Request.Context(), propertyID)
	if err != nil {
		respondServiceError(c, err, "Property not found")
		return
	}

	c.JSON(http.StatusOK, contacts)
}
