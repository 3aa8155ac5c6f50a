package handler

import (
	"net/http"
	"strconv"

	"attendly/internal/domain"
	"attendly/internal/models"
	"attendly/internal/repository"

	"github.com/gin-gonic/gin"
)

// LocationHandler manages the office location directory used as geofence
// targets. Admin-only.
type LocationHandler struct {
	locRepo *repository.OfficeLocationRepository
}

func NewLocationHandler(locRepo *repository.OfficeLocationRepository) *LocationHandler {
	return &LocationHandler{locRepo: locRepo}
}

type OfficeLocationRequest struct {
	Name         string   `json:"name" binding:"required,max=128"`
	Address      string   `json:"address"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	RadiusMeters *int     `json:"radius_meters"`
}

func (r *OfficeLocationRequest) validRadius() bool {
	return r.RadiusMeters == nil ||
		(*r.RadiusMeters >= domain.MinDistanceLimitM && *r.RadiusMeters <= domain.MaxDistanceLimitM)
}

func (h *LocationHandler) List(c *gin.Context) {
	list, err := h.locRepo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load locations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": list})
}

func (h *LocationHandler) Create(c *gin.Context) {
	var req OfficeLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.validRadius() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "radius_meters must be between 50 and 2000"})
		return
	}
	loc := &models.OfficeLocation{
		Name:         req.Name,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
		GPSStatus:    domain.GPSStatusPending,
	}
	if req.Latitude != nil && req.Longitude != nil {
		loc.GPSStatus = domain.GPSStatusConverted
	}
	if err := h.locRepo.Create(loc); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "location already exists"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"location": loc})
}

func (h *LocationHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	loc, err := h.locRepo.FindByID(c.Request.Context(), uint(id))
	if err != nil || loc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
		return
	}
	var req OfficeLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.validRadius() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "radius_meters must be between 50 and 2000"})
		return
	}
	loc.Name = req.Name
	loc.Address = req.Address
	loc.Latitude = req.Latitude
	loc.Longitude = req.Longitude
	loc.RadiusMeters = req.RadiusMeters
	if loc.Latitude != nil && loc.Longitude != nil {
		loc.GPSStatus = domain.GPSStatusConverted
	} else {
		loc.GPSStatus = domain.GPSStatusPending
	}
	if err := h.locRepo.Update(loc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": loc})
}

func (h *LocationHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	loc, err := h.locRepo.FindByID(c.Request.Context(), uint(id))
	if err != nil || loc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
		return
	}
	if loc.IsHeadquarters {
		// Headquarters is the fallback geofence for unassigned staff.
		c.JSON(http.StatusConflict, gin.H{"error": "headquarters cannot be deleted"})
		return
	}
	if err := h.locRepo.Delete(loc.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
