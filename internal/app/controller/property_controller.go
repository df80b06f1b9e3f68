package controller

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentease/rentease-backend/internal/app/model"
	"github.com/rentease/rentease-backend/internal/app/service"
	apperrors "github.com/rentease/rentease-backend/internal/errors"
	"github.com/rentease/rentease-backend/internal/middleware"
	"github.com/rentease/rentease-backend/pkg/util"
)

// imagesFormField is the multipart field carrying listing photos
const imagesFormField = "images"

type PropertyController struct {
	propertyService service.PropertyService
}

func NewPropertyController(propertyService service.PropertyService) *PropertyController {
	return &PropertyController{
		propertyService: propertyService,
	}
}

// GetAll returns every listing, newest first
// GET /api/properties
func (ctrl *PropertyController) GetAll(c *gin.Context) {
	properties, err := ctrl.propertyService.GetAll()
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list properties")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": properties,
	})
}

// GetByID returns a single listing
// GET /api/properties/:id
func (ctrl *PropertyController) GetByID(c *gin.Context) {
	id, ok := parsePropertyID(c)
	if !ok {
		return
	}

	property, err := ctrl.propertyService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			apperrors.NotFound(c, apperrors.PropertyNotFound, "Property not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch property")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"property": property,
	})
}

// GetMyProperties returns the authenticated user's listings
// GET /api/properties/my-properties
func (ctrl *PropertyController) GetMyProperties(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	properties, err := ctrl.propertyService.GetByOwner(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list owned properties")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": properties,
	})
}

// Create registers a listing with up to 5 uploaded images
// POST /api/properties/add-property
func (ctrl *PropertyController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	input, ok := bindPropertyForm(c)
	if !ok {
		return
	}

	uploads, ok := formImages(c)
	if !ok {
		return
	}

	property, err := ctrl.propertyService.Create(c.Request.Context(), userID, input, uploads)
	if err != nil {
		respondPropertyError(c, err, "create property")
		return
	}

	log.Info("Property created", map[string]interface{}{
		"property_id": property.ID,
		"user_id":     userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":  "Property added successfully",
		"property": property,
	})
}

// Update replaces a listing's fields and reconciles its images. The form's
// existingImages field declares which stored URLs survive; everything else
// previously stored is removed.
// PUT /api/properties/:id
func (ctrl *PropertyController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	id, ok := parsePropertyID(c)
	if !ok {
		return
	}

	input, ok := bindPropertyForm(c)
	if !ok {
		return
	}

	keptImages, ok := formKeptImages(c)
	if !ok {
		return
	}

	uploads, ok := formImages(c)
	if !ok {
		return
	}

	property, err := ctrl.propertyService.Update(c.Request.Context(), userID, id, input, keptImages, uploads)
	if err != nil {
		respondPropertyError(c, err, "update property")
		return
	}

	log.Info("Property updated", map[string]interface{}{
		"property_id": id,
		"user_id":     userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":  "Property updated successfully",
		"property": property,
	})
}

// Delete removes a listing and its stored images
// DELETE /api/properties/:id
func (ctrl *PropertyController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	id, ok := parsePropertyID(c)
	if !ok {
		return
	}

	if err := ctrl.propertyService.Delete(c.Request.Context(), userID, id); err != nil {
		respondPropertyError(c, err, "delete property")
		return
	}

	log.Info("Property deleted", map[string]interface{}{
		"property_id": id,
		"user_id":     userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Property deleted successfully",
	})
}

func parsePropertyID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid property id")
		return 0, false
	}
	return uint(id), true
}

// bindPropertyForm reads the listing's scalar fields from the multipart form
func bindPropertyForm(c *gin.Context) (service.PropertyInput, bool) {
	input := service.PropertyInput{
		Type:         model.PropertyCategory(c.PostForm("type")),
		Title:        c.PostForm("title"),
		Location:     c.PostForm("location"),
		Price:        c.PostForm("price"),
		Deposit:      c.PostForm("deposit"),
		Description:  c.PostForm("description"),
		SqFt:         c.PostForm("sqft"),
		Gender:       model.GenderPreference(c.PostForm("gender")),
		Furnishing:   c.PostForm("furnishing"),
		Availability: c.PostForm("availability"),
		Phone:        c.PostForm("phone"),
		Whatsapp:     c.PostForm("whatsapp"),
		Amenities:    util.NormalizeList(c.PostFormArray("amenities")),
	}

	if input.Title == "" || input.Location == "" || input.Price == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Title, location and price are required")
		return service.PropertyInput{}, false
	}

	if v := c.PostForm("beds"); v != "" {
		beds, err := strconv.Atoi(v)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid beds value")
			return service.PropertyInput{}, false
		}
		input.Beds = beds
	}
	if v := c.PostForm("baths"); v != "" {
		baths, err := strconv.Atoi(v)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid baths value")
			return service.PropertyInput{}, false
		}
		input.Baths = baths
	}
	if v := c.PostForm("maxGuests"); v != "" {
		guests, err := strconv.Atoi(v)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid maxGuests value")
			return service.PropertyInput{}, false
		}
		input.MaxGuests = &guests
	}

	from, ok := parseFormDate(c, "availableFrom")
	if !ok {
		return service.PropertyInput{}, false
	}
	to, ok := parseFormDate(c, "availableTo")
	if !ok {
		return service.PropertyInput{}, false
	}
	input.AvailableFrom = from
	input.AvailableTo = to

	return input, true
}

func parseFormDate(c *gin.Context, field string) (*time.Time, bool) {
	v := c.PostForm(field)
	if v == "" {
		return nil, true
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return &t, true
		}
	}

	apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid "+field+" date")
	return nil, false
}

// formImages collects the uploaded files from the images field
func formImages(c *gin.Context) ([]*multipart.FileHeader, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid multipart form")
		return nil, false
	}
	return form.File[imagesFormField], true
}

// formKeptImages parses the existingImages field, a JSON array of stored
// image URLs the client wants to keep. Absent field means keep none.
func formKeptImages(c *gin.Context) ([]string, bool) {
	raw := c.PostForm("existingImages")
	if raw == "" {
		return nil, true
	}

	var kept []string
	if err := json.Unmarshal([]byte(raw), &kept); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "existingImages must be a JSON array of URLs")
		return nil, false
	}
	return kept, true
}

func respondPropertyError(c *gin.Context, err error, operation string) {
	switch {
	case errors.Is(err, service.ErrPropertyNotFound):
		apperrors.NotFound(c, apperrors.PropertyNotFound, "Property not found")
	case errors.Is(err, service.ErrTooManyImages):
		apperrors.BadRequest(c, apperrors.PropertyTooManyImages, "A property can have at most 5 images")
	case errors.Is(err, service.ErrInvalidCategory):
		apperrors.BadRequest(c, apperrors.PropertyInvalidType, "Invalid property type")
	case errors.Is(err, service.ErrUploadFailed):
		apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.UploadFailed, "Image upload failed")
	default:
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, operation)
	}
}
