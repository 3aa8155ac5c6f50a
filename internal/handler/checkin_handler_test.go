package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"attendly/internal/checkin"
	"attendly/internal/domain"
	"attendly/internal/models"
	"attendly/internal/repository"
	"attendly/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubIPLookup struct{ ip string }

func (s stubIPLookup) PublicIP(context.Context) (string, error) { return s.ip, nil }

func authAs(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

// newCheckInRouter builds the check-in surface on an in-memory database with
// a headquarters geofence at (0, 0) and one staff user.
func newCheckInRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Branch{},
		&models.User{},
		&models.OfficeLocation{},
		&models.CheckInRecord{},
		&models.SystemSetting{},
	))

	lat, lng := 0.0, 0.0
	require.NoError(t, db.Create(&models.OfficeLocation{
		Name: domain.HeadquartersName, Latitude: &lat, Longitude: &lng,
		GPSStatus: domain.GPSStatusConverted, IsHeadquarters: true,
	}).Error)
	require.NoError(t, db.Create(&models.User{
		Email: "staff@attendly.local", Username: "staff",
		Role: domain.RoleStaff, FullName: "Test Staff",
	}).Error)
	require.NoError(t, db.Create(&models.SystemSetting{
		Key: domain.SettingCheckInDistanceLimit, Value: "500",
	}).Error)

	userRepo := repository.NewUserRepository(db)
	locRepo := repository.NewOfficeLocationRepository(db)
	recordRepo := repository.NewRecordRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	attendance := service.NewAttendanceService(locRepo, settingRepo, recordRepo, stubIPLookup{ip: "203.0.113.7"}, 10*time.Second)
	reminders := service.NewReminderService(context.Background(), nil)
	h := NewCheckInHandler(attendance, reminders, userRepo, recordRepo)

	r := gin.New()
	r.POST("/checkin", authAs(1), h.Attempt)
	r.GET("/today", authAs(1), h.Today)
	return r, db
}

func postCheckIn(t *testing.T, r *gin.Engine, body string) (*httptest.ResponseRecorder, checkin.AttemptResult) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkin", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var res checkin.AttemptResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return w, res
}

func recordCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.CheckInRecord{}).Count(&n).Error)
	return n
}

func TestCheckInWithinRangeReturnsRecord(t *testing.T) {
	r, db := newCheckInRouter(t)

	w, res := postCheckIn(t, r, `{"mode":"location","latitude":0.001,"longitude":0}`)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	assert.True(t, res.Success)
	assert.Equal(t, domain.ActionCheckIn, res.Action)
	require.NotNil(t, res.Record)
	assert.Equal(t, domain.SourceLocation, res.Record.SourceType)
	require.NotNil(t, res.State)
	assert.Equal(t, domain.ActionCheckOut, res.State.NextAction)
	assert.EqualValues(t, 1, recordCount(t, db))
}

func TestCheckInOutsideRangeReturnsConflictWithDistances(t *testing.T) {
	r, db := newCheckInRouter(t)

	// ~1000m north of headquarters with a 500m limit.
	w, res := postCheckIn(t, r, `{"mode":"location","latitude":0.009,"longitude":0}`)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, res.Success)
	assert.Equal(t, checkin.KindDistanceExceeded, res.ErrKind)
	assert.Equal(t, 500, res.AllowedRadiusMeters)
	assert.InDelta(t, 1000, res.DistanceMeters, 15)
	assert.EqualValues(t, 0, recordCount(t, db))
}

func TestCheckInPermissionDeniedReturnsUnauthorized(t *testing.T) {
	r, db := newCheckInRouter(t)

	w, res := postCheckIn(t, r, `{"mode":"location","position_error":"permission_denied"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, checkin.KindPermissionDenied, res.ErrKind)
	assert.EqualValues(t, 0, recordCount(t, db))
}

func TestCheckInIPModeSkipsGeofence(t *testing.T) {
	r, db := newCheckInRouter(t)

	// No coordinates at all; the IP path must not require them.
	w, res := postCheckIn(t, r, `{"mode":"ip"}`)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	assert.True(t, res.Success)
	require.NotNil(t, res.Record)
	assert.Equal(t, domain.SourceIP, res.Record.SourceType)
	assert.Equal(t, "203.0.113.7", res.Record.IPAddress)
	assert.EqualValues(t, 1, recordCount(t, db))
}

func TestCheckInSecondAttemptIsCheckOutThenExhausted(t *testing.T) {
	r, _ := newCheckInRouter(t)
	body := `{"mode":"location","latitude":0.001,"longitude":0}`

	_, first := postCheckIn(t, r, body)
	require.True(t, first.Success)
	assert.Equal(t, domain.ActionCheckIn, first.Action)

	_, second := postCheckIn(t, r, body)
	require.True(t, second.Success)
	assert.Equal(t, domain.ActionCheckOut, second.Action)

	w, third := postCheckIn(t, r, body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, checkin.KindNoActionAvailable, third.ErrKind)
}

func TestTodayReflectsRecordedState(t *testing.T) {
	r, _ := newCheckInRouter(t)
	_, res := postCheckIn(t, r, `{"mode":"location","latitude":0.001,"longitude":0}`)
	require.True(t, res.Success)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/today", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		State checkin.DailyState `json:"state"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.State.CheckIn)
	assert.Nil(t, body.State.CheckOut)
	assert.Equal(t, domain.ActionCheckOut, body.State.NextAction)
}
