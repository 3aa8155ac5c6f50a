package handler

import (
	"net/http"
	"strconv"

	"attendly/internal/middleware"
	"attendly/internal/models"
	"attendly/internal/repository"

	"github.com/gin-gonic/gin"
)

type AnnouncementHandler struct {
	annRepo *repository.AnnouncementRepository
	hub     interface{ BroadcastAnnouncement(title string) }
}

func NewAnnouncementHandler(annRepo *repository.AnnouncementRepository, hub interface{ BroadcastAnnouncement(string) }) *AnnouncementHandler {
	return &AnnouncementHandler{annRepo: annRepo, hub: hub}
}

type AnnouncementRequest struct {
	Title  string `json:"title" binding:"required,max=255"`
	Body   string `json:"body"`
	Pinned bool   `json:"pinned"`
}

func (h *AnnouncementHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	list, total, err := h.annRepo.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load announcements"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"announcements": list, "total": total})
}

func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a := &models.Announcement{
		Title:    req.Title,
		Body:     req.Body,
		Pinned:   req.Pinned,
		AuthorID: middleware.GetUserID(c),
	}
	if err := h.annRepo.Create(a); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	if h.hub != nil {
		h.hub.BroadcastAnnouncement(a.Title)
	}
	c.JSON(http.StatusCreated, gin.H{"announcement": a})
}

func (h *AnnouncementHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	a, err := h.annRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "announcement not found"})
		return
	}
	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a.Title = req.Title
	a.Body = req.Body
	a.Pinned = req.Pinned
	if err := h.annRepo.Update(a); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"announcement": a})
}

func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.annRepo.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
