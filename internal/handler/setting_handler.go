package handler

import (
	"net/http"
	"strconv"

	"attendly/internal/domain"
	"attendly/internal/repository"

	"github.com/gin-gonic/gin"
)

// SettingHandler exposes admin-editable system settings. Changes to the
// distance limit apply to the next geofence validation immediately; nothing
// caches the value.
type SettingHandler struct {
	settingRepo *repository.SettingRepository
}

func NewSettingHandler(settingRepo *repository.SettingRepository) *SettingHandler {
	return &SettingHandler{settingRepo: settingRepo}
}

func (h *SettingHandler) List(c *gin.Context) {
	list, err := h.settingRepo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": list})
}

func (h *SettingHandler) GetDistanceLimit(c *gin.Context) {
	v, err := h.settingRepo.DistanceLimitMeters(c.Request.Context())
	if err != nil {
		v = domain.DefaultDistanceLimitM
	}
	c.JSON(http.StatusOK, gin.H{"distance_limit_m": v})
}

type DistanceLimitRequest struct {
	DistanceLimitM int `json:"distance_limit_m" binding:"required"`
}

func (h *SettingHandler) UpdateDistanceLimit(c *gin.Context) {
	var req DistanceLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DistanceLimitM < domain.MinDistanceLimitM || req.DistanceLimitM > domain.MaxDistanceLimitM {
		c.JSON(http.StatusBadRequest, gin.H{"error": "distance_limit_m must be between 50 and 2000"})
		return
	}
	if err := h.settingRepo.Set(domain.SettingCheckInDistanceLimit, strconv.Itoa(req.DistanceLimitM)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"distance_limit_m": req.DistanceLimitM})
}
