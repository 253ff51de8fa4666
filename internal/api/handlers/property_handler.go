package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arora427/HomeVerse/internal/config"
	"github.com/arora427/HomeVerse/internal/models"
	"github.com/arora427/HomeVerse/internal/services"
	"github.com/arora427/HomeVerse/internal/storage"
)

// PropertyHandler handles REST requests for property listings.
type PropertyHandler struct {
	cfg             *config.Config
	propertyService services.IPropertyService
	storage         storage.Storage
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(cfg *config.Config, propertyService services.IPropertyService, store storage.Storage) *PropertyHandler {
	return &PropertyHandler{cfg: cfg, propertyService: propertyService, storage: store}
}

// ListProperties handles GET /api/properties
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	filters := services.PropertyFilters{
		Location: c.Query("location"),
	}

	if typeStr := c.Query("propertyType"); typeStr != "" {
		propertyType := models.PropertyType(typeStr)
		filters.PropertyType = &propertyType
	}

	if ownerStr := c.Query("ownerId"); ownerStr != "" {
		ownerID, err := primitive.ObjectIDFromHex(ownerStr)
		if err != nil {
			// A malformed owner filter matches nothing.
			c.JSON(http.StatusOK, gin.H{
				"properties":  []models.PropertyWithOwner{},
				"totalPages":  0,
				"currentPage": 1,
				"total":       0,
			})
			return
		}
		filters.OwnerID = &ownerID
	}

	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filters.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "10")); err == nil {
		filters.Limit = limit
	}

	result, err := h.propertyService.List(c.Request.Context(), filters)
	if err != nil {
		respondServiceError(c, err, "Property not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties":  result.Properties,
		"totalPages":  result.TotalPages,
		"currentPage": result.CurrentPage,
		"total":       result.Total,
	})
}

// GetPropertyByID handles GET /api/properties/:id
func (h *PropertyHandler) GetPropertyByID(c *gin.Context) {
	propertyID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		// Malformed ids are indistinguishable from absent ones.
		c.JSON(http.StatusNotFound, gin.H{"message": "Property not found"})
		return
	}

	property, err := h.propertyService.FindByID(c.Request.Context(), propertyID)
	if err != nil {
		respondServiceError(c, err, "Property not found")
		return
	}

	c.JSON(http.StatusOK, property)
}

// CreateProperty handles POST /api/properties
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	fieldErrs := map[string]string{}
	params := services.CreatePropertyParams{
		Title:        c.PostForm("title"),
		Description:  c.PostForm("description"),
		Location:     c.PostForm("location"),
		PropertyType: models.PropertyType(c.PostForm("propertyType")),
		AgentName:    c.PostForm("agentName"),
		AgentAvatar:  c.PostForm("agentAvatar"),
		Videos:       c.PostFormArray("videos"),
	}
	params.Price = parseFloatField(c.PostForm("price"), "price", "Price must be a number", fieldErrs)
	params.Bedrooms = parseIntField(c.PostForm("bedrooms"), "bedrooms", "Bedrooms must be a positive integer", fieldErrs)
	params.Bathrooms = parseIntField(c.PostForm("bathrooms"), "bathrooms", "Bathrooms must be a positive integer", fieldErrs)
	params.SquareFeet = parseIntField(c.PostForm("squareFeet"), "squareFeet", "Square feet must be a positive integer", fieldErrs)
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
		return
	}

	images, ok := saveUploadedImages(c, h.storage, h.cfg.MaxUploadFiles, h.cfg.MaxUploadSizeMB)
	if !ok {
		return
	}
	params.Images = images

	property, err := h.propertyService.Create(c.Request.Context(), callerID, params)
	if err != nil {
		respondServiceError(c, err, "Property not found")
		return
	}

	c.JSON(http.StatusCreated, property)
}

// UpdateProperty handles PUT /api/properties/:id
// Only fields present in the form are applied; new images are appended.
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	propertyID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Property not found"})
		return
	}

	fieldErrs := map[string]string{}
	patch := services.PropertyPatch{}
	if title, present := c.GetPostForm("title"); present {
		patch.Title = &title
	}
	if description, present := c.GetPostForm("description"); present {
		patch.Description = &description
	}
	if location, present := c.GetPostForm("location"); present {
		patch.Location = &location
	}
	if typeStr, present := c.GetPostForm("propertyType"); present {
		propertyType := models.PropertyType(typeStr)
		patch.PropertyType = &propertyType
	}
	if agentName, present := c.GetPostForm("agentName"); present {
		patch.AgentName = &agentName
	}
	if agentAvatar, present := c.GetPostForm("agentAvatar"); present {
		patch.AgentAvatar = &agentAvatar
	}
	if status, present := c.GetPostForm("status"); present {
		patch.Status = &status
	}
	if priceStr, present := c.GetPostForm("price"); present {
		price := parseFloatField(priceStr, "price", "Price must be a number", fieldErrs)
		patch.Price = &price
	}
	if bedroomsStr, present := c.GetPostForm("bedrooms"); present {
		bedrooms := parseIntField(bedroomsStr, "bedrooms", "Bedrooms must be a positive integer", fieldErrs)
		patch.Bedrooms = &bedrooms
	}
	if bathroomsStr, present := c.GetPostForm("bathrooms"); present {
		bathrooms := parseIntField(bathroomsStr, "bathrooms", "Bathrooms must be a positive integer", fieldErrs)
		patch.Bathrooms = &bathrooms
	}
	if squareFeetStr, present := c.GetPostForm("squareFeet"); present {
		squareFeet := parseIntField(squareFeetStr, "squareFeet", "Square feet must be a positive integer", fieldErrs)
		patch.SquareFeet = &squareFeet
	}
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
		return
	}

	newImages, ok := saveUploadedImages(c, h.storage, h.cfg.MaxUploadFiles, h.cfg.MaxUploadSizeMB)
	if !ok {
		return
	}

	property, err := h.propertyService.Update(c.Request.Context(), propertyID, callerID, patch, newImages)
	if err != nil {
		respondServiceError(c, err, "Property not found")
		return
	}

	c.JSON(http.StatusOK, property)
}

// DeleteProperty handles DELETE /api/properties/:id
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	propertyID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Property not found"})
		return
	}

	if err := h.propertyService.Delete(c.Request.Context(), propertyID, callerID); err != nil {
		respondServiceError(c, err, "Property not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Property deleted successfully"})
}

func parseFloatField(value, field, message string, fieldErrs map[string]string) float64 {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		fieldErrs[field] = message
		return 0
	}
	return parsed
}

func parseIntField(value, field, message string, fieldErrs map[string]string) int {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		fieldErrs[field] = message
		return 0
	}
	return parsed
}
