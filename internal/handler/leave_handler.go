package handler

import (
	"net/http"
	"strconv"
	"time"

	"attendly/internal/domain"
	"attendly/internal/middleware"
	"attendly/internal/models"
	"attendly/internal/repository"

	"github.com/gin-gonic/gin"
)

type LeaveHandler struct {
	leaveRepo *repository.LeaveRepository
}

func NewLeaveHandler(leaveRepo *repository.LeaveRepository) *LeaveHandler {
	return &LeaveHandler{leaveRepo: leaveRepo}
}

type LeaveRequestBody struct {
	Type      string `json:"type" binding:"required,max=32"`
	StartDate string `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

func (h *LeaveHandler) Create(c *gin.Context) {
	var req LeaveRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date format (use YYYY-MM-DD)"})
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date format (use YYYY-MM-DD)"})
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date is before start_date"})
		return
	}
	l := &models.LeaveRequest{
		UserID:    middleware.GetUserID(c),
		Type:      req.Type,
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
		Status:    domain.LeaveStatusPending,
	}
	if err := h.leaveRepo.Create(l); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"leave_request": l})
}

func (h *LeaveHandler) Mine(c *gin.Context) {
	list, err := h.leaveRepo.ListByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leave requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leave_requests": list})
}

func (h *LeaveHandler) Pending(c *gin.Context) {
	list, err := h.leaveRepo.ListPending()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leave requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leave_requests": list})
}

type LeaveReviewRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

// Review approves or rejects a pending leave request.
func (h *LeaveHandler) Review(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	l, err := h.leaveRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "leave request not found"})
		return
	}
	if l.Status != domain.LeaveStatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "leave request already reviewed"})
		return
	}
	var req LeaveReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reviewer := middleware.GetUserID(c)
	l.ReviewerID = &reviewer
	l.ReviewNote = req.Note
	if req.Approve {
		l.Status = domain.LeaveStatusApproved
	} else {
		l.Status = domain.LeaveStatusRejected
	}
	if err := h.leaveRepo.Update(l); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leave_request": l})
}
