package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"attendly/internal/checkin"
	"attendly/internal/domain"
	"attendly/internal/middleware"
	"attendly/internal/repository"
	"attendly/internal/service"

	"github.com/gin-gonic/gin"
)

type CheckInHandler struct {
	attendance *service.AttendanceService
	reminders  *service.ReminderService
	userRepo   *repository.UserRepository
	recordRepo *repository.RecordRepository
}

func NewCheckInHandler(
	attendance *service.AttendanceService,
	reminders *service.ReminderService,
	userRepo *repository.UserRepository,
	recordRepo *repository.RecordRepository,
) *CheckInHandler {
	return &CheckInHandler{
		attendance: attendance,
		reminders:  reminders,
		userRepo:   userRepo,
		recordRepo: recordRepo,
	}
}

// CheckInRequest carries the device's position report. The device acquires
// GPS client-side; when acquisition failed the client reports the failure
// kind instead of coordinates so the engine can classify it.
type CheckInRequest struct {
	Mode           string   `json:"mode" binding:"required,oneof=location ip"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	AccuracyMeters float64  `json:"accuracy_meters"`
	PositionError  string   `json:"position_error"` // permission_denied | position_unavailable | timeout
}

// reportedPosition adapts the client's position report to the engine's
// position source port.
type reportedPosition struct {
	req CheckInRequest
}

func (p reportedPosition) Current(ctx context.Context) (checkin.Position, error) {
	switch p.req.PositionError {
	case "permission_denied":
		return checkin.Position{}, &checkin.Error{Kind: checkin.KindPermissionDenied, Message: "location permission denied"}
	case "position_unavailable":
		return checkin.Position{}, &checkin.Error{Kind: checkin.KindPositionUnavailable, Message: "device position unavailable"}
	case "timeout":
		return checkin.Position{}, &checkin.Error{Kind: checkin.KindTimeout, Message: "device position request timed out"}
	}
	if p.req.Latitude == nil || p.req.Longitude == nil {
		return checkin.Position{}, &checkin.Error{Kind: checkin.KindPositionUnavailable, Message: "no coordinates supplied"}
	}
	return checkin.Position{
		Latitude:       *p.req.Latitude,
		Longitude:      *p.req.Longitude,
		AccuracyMeters: p.req.AccuracyMeters,
	}, nil
}

func statusForKind(kind checkin.Kind) int {
	switch kind {
	case checkin.KindMissingUser, checkin.KindPermissionDenied:
		return http.StatusUnauthorized
	case checkin.KindDistanceExceeded, checkin.KindNoActionAvailable, checkin.KindDuplicateRecord, checkin.KindAttemptInProgress:
		return http.StatusConflict
	case checkin.KindLocationNotFound, checkin.KindLocationNotConfigured:
		return http.StatusUnprocessableEntity
	case checkin.KindTimeout, checkin.KindPositionUnavailable:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Attempt runs one check-in/check-out attempt. The user identity always
// comes from the session token, never from the payload.
func (h *CheckInHandler) Attempt(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.userRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}

	mode := checkin.ModeLocation
	if req.Mode == domain.SourceIP {
		mode = checkin.ModeIP
	}

	res := h.attendance.AttemptCheckIn(c.Request.Context(), user, mode, reportedPosition{req: req})
	if !res.Success {
		c.JSON(statusForKind(res.ErrKind), res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Today returns the derived daily state for the authenticated user.
func (h *CheckInHandler) Today(c *gin.Context) {
	userID := middleware.GetUserID(c)
	state, err := h.attendance.DailyState(c.Request.Context(), userID)
	if err != nil {
		// The tracker already degraded to a deterministic empty state.
		c.JSON(http.StatusOK, gin.H{"state": state, "degraded": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state})
}

// Remind evaluates the rate-limited reminder for the authenticated user's
// outstanding action, if any.
func (h *CheckInHandler) Remind(c *gin.Context) {
	userID := middleware.GetUserID(c)
	state, err := h.attendance.DailyState(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"emitted": false})
		return
	}
	if !state.ActionAvailable() {
		c.JSON(http.StatusOK, gin.H{"emitted": false})
		return
	}
	emitted := h.reminders.CheckAndSend(userID, state.NextAction)
	c.JSON(http.StatusOK, gin.H{"emitted": emitted, "expected_action": state.NextAction})
}

// Records lists the authenticated user's attendance history.
func (h *CheckInHandler) Records(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := pagination(c)

	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			from = &t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			end := t.AddDate(0, 0, 1)
			to = &end
		}
	}

	records, total, err := h.recordRepo.ListByUser(userID, from, to, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load records"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records, "total": total})
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
