package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ren89/property-listing-app/internal/filter"
	"github.com/ren89/property-listing-app/internal/models"
	"github.com/ren89/property-listing-app/internal/services"
	"github.com/ren89/property-listing-app/internal/store"
)

// RestPropertyHandler handles REST requests for property listings. It keeps
// a shared ListStore as the in-memory mirror of the collection: reads serve
// filtered views of the mirror, mutations update it optimistically and fall
// back to a wholesale reload when the database disagrees.
type RestPropertyHandler struct {
	propertyService services.IPropertyService
	listings        *store.ListStore
}

// NewRestPropertyHandler creates a new RestPropertyHandler.
func NewRestPropertyHandler(propertyService services.IPropertyService, listings *store.ListStore) *RestPropertyHandler {
	return &RestPropertyHandler{
		propertyService: propertyService,
		listings:        listings,
	}
}

// criteriaFromQuery binds the browse filters. Absent parameters fall back
// to the "all" sentinels so an unfiltered request returns everything.
func criteriaFromQuery(c *gin.Context) filter.Criteria {
	crit := filter.Default()
	crit.Search = c.Query("search")
	if v := c.Query("type"); v != "" {
		crit.Type = v
	}
	if v := c.Query("status"); v != "" {
		crit.Status = v
	}
	crit.MinPrice = c.Query("min_price")
	crit.MaxPrice = c.Query("max_price")
	return crit
}

// ListProperties handles GET /v1/properties
func (h *RestPropertyHandler) ListProperties(c *gin.Context) {
	if err := h.ensureLoaded(c); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load property listings"})
		return
	}

	crit := criteriaFromQuery(c)
	visible := h.listings.Visible(crit)

	c.JSON(http.StatusOK, gin.H{
		"data":  visible,
		"total": h.listings.Len(),
	})
}

// GetPropertyByID handles GET /v1/properties/:id
func (h *RestPropertyHandler) GetPropertyByID(c *gin.Context) {
	id := c.Param("id")

	listing, err := h.propertyService.GetPropertyByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": listing})
}

// CreateProperty handles POST /v1/properties
func (h *RestPropertyHandler) CreateProperty(c *gin.Context) {
	var data models.CreatePropertyData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := data.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.propertyService.CreateProperty(c.Request.Context(), data)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create property"})
		return
	}

	// Prepend the authoritative record so the next read sees it first.
	h.listings.Add(*created)

	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// UpdateProperty handles PATCH /v1/properties/:id
func (h *RestPropertyHandler) UpdateProperty(c *gin.Context) {
	id := c.Param("id")

	var data models.UpdatePropertyData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := data.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if data.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	// Apply to the mirror first, reconcile with the database after.
	h.listings.Update(id, data)

	updated, err := h.propertyService.UpdateProperty(c.Request.Context(), id, data)
	if err != nil {
		h.rollback(c)
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update property"})
		return
	}

	// Replace the optimistic guess with the authoritative record.
	h.listings.Replace(*updated)

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// DeleteProperty handles DELETE /v1/properties/:id
func (h *RestPropertyHandler) DeleteProperty(c *gin.Context) {
	id := c.Param("id")

	h.listings.Remove(id)

	if err := h.propertyService.DeleteProperty(c.Request.Context(), id); err != nil {
		h.rollback(c)
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ensureLoaded hydrates the mirror on first use.
func (h *RestPropertyHandler) ensureLoaded(c *gin.Context) error {
	if h.listings.Version() > 0 {
		return nil
	}
	return h.listings.Load(c.Request.Context())
}

// rollback reloads the mirror wholesale after a failed mutation.
func (h *RestPropertyHandler) rollback(c *gin.Context) {
	if err := h.listings.Load(c.Request.Context()); err != nil {
		log.Printf("WARN: failed to reload listings after rollback: %v", err)
	}
}
