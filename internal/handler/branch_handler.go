package handler

import (
	"net/http"
	"strconv"

	"attendly/internal/models"
	"attendly/internal/repository"

	"github.com/gin-gonic/gin"
)

type BranchHandler struct {
	branchRepo *repository.BranchRepository
}

func NewBranchHandler(branchRepo *repository.BranchRepository) *BranchHandler {
	return &BranchHandler{branchRepo: branchRepo}
}

type BranchRequest struct {
	Name    string `json:"name" binding:"required,max=128"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (h *BranchHandler) List(c *gin.Context) {
	list, err := h.branchRepo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load branches"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"branches": list})
}

func (h *BranchHandler) Create(c *gin.Context) {
	var req BranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b := &models.Branch{Name: req.Name, Address: req.Address, Phone: req.Phone}
	if err := h.branchRepo.Create(b); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "branch already exists"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"branch": b})
}

func (h *BranchHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	b, err := h.branchRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "branch not found"})
		return
	}
	var req BranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b.Name = req.Name
	b.Address = req.Address
	b.Phone = req.Phone
	if err := h.branchRepo.Update(b); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"branch": b})
}

func (h *BranchHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.branchRepo.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
