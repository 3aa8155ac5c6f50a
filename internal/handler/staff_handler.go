package handler

import (
	"net/http"
	"strconv"

	"attendly/internal/repository"
	"attendly/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StaffHandler covers the HR staff directory: create, list, update, assign
// offices and branches. HR or admin only.
type StaffHandler struct {
	authSvc  *service.AuthService
	userRepo *repository.UserRepository
	locRepo  *repository.OfficeLocationRepository
}

func NewStaffHandler(authSvc *service.AuthService, userRepo *repository.UserRepository, locRepo *repository.OfficeLocationRepository) *StaffHandler {
	return &StaffHandler{authSvc: authSvc, userRepo: userRepo, locRepo: locRepo}
}

type CreateStaffRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Username   string `json:"username" binding:"required,min=3,max=64"`
	Password   string `json:"password" binding:"required,min=8"`
	Role       string `json:"role" binding:"omitempty,oneof=ADMIN HR STAFF"`
	FullName   string `json:"full_name" binding:"required"`
	EmployeeNo string `json:"employee_no"`
}

func (h *StaffHandler) Create(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.authSvc.Register(req.Email, req.Username, req.Password, req.Role, req.FullName, req.EmployeeNo)
	if err != nil {
		switch err {
		case service.ErrEmailExists, service.ErrUsernameExists, service.ErrEmployeeNoExists:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logrus.WithError(err).Error("staff creation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "staff creation failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": u})
}

func (h *StaffHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	var branchID *uint
	if v := c.Query("branch_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			b := uint(id)
			branchID = &b
		}
	}
	users, total, err := h.userRepo.List(branchID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load staff"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": users, "total": total})
}

func (h *StaffHandler) Get(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	u, err := h.userRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "staff member not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

type UpdateStaffRequest struct {
	FullName       *string `json:"full_name"`
	Position       *string `json:"position"`
	Role           *string `json:"role" binding:"omitempty,oneof=ADMIN HR STAFF"`
	BranchID       *uint   `json:"branch_id"`
	AssignedOffice *string `json:"assigned_office"`
}

// Update edits a staff profile. An empty assigned_office clears the
// assignment, putting the employee on the headquarters geofence.
func (h *StaffHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	u, err := h.userRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "staff member not found"})
		return
	}
	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.Position != nil {
		u.Position = *req.Position
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.BranchID != nil {
		u.BranchID = req.BranchID
	}
	if req.AssignedOffice != nil {
		if *req.AssignedOffice == "" {
			u.AssignedOffice = nil
		} else {
			loc, err := h.locRepo.FindByName(c.Request.Context(), *req.AssignedOffice)
			if err != nil || loc == nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "assigned office does not exist"})
				return
			}
			u.AssignedOffice = req.AssignedOffice
		}
	}
	if err := h.userRepo.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *StaffHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.userRepo.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
