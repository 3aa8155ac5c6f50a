package checkin

import (
	"context"
	"testing"
	"time"

	"attendly/internal/domain"
	"attendly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedTracker(store RecordStore, at time.Time) *DailyTracker {
	t := NewDailyTracker(store)
	t.now = func() time.Time { return at }
	return t
}

func successRecord(userID uint, action string, at time.Time) models.CheckInRecord {
	day := DayKey(at)
	a := action
	return models.CheckInRecord{
		ID: "rec-" + action + "-" + day, UserID: userID, Timestamp: at,
		SourceType: domain.SourceLocation, Status: domain.RecordStatusSuccess,
		Action: action, DayKey: &day, ActionKey: &a,
	}
}

func TestTodayNoRecordsMeansCheckIn(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.Local)
	tracker := fixedTracker(&fakeStore{}, now)

	state, err := tracker.Today(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, state.CheckIn)
	assert.Nil(t, state.CheckOut)
	assert.Equal(t, domain.ActionCheckIn, state.NextAction)
	assert.True(t, state.ActionAvailable())
}

func TestTodayAfterCheckInNextIsCheckOut(t *testing.T) {
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.Local)
	store := &fakeStore{records: []models.CheckInRecord{
		successRecord(1, domain.ActionCheckIn, now.Add(-3*time.Hour)),
	}}
	tracker := fixedTracker(store, now)

	state, err := tracker.Today(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, state.CheckIn)
	assert.Nil(t, state.CheckOut)
	assert.Equal(t, domain.ActionCheckOut, state.NextAction)
}

func TestTodayBothDoneNoActionAvailable(t *testing.T) {
	now := time.Date(2026, 3, 9, 18, 0, 0, 0, time.Local)
	store := &fakeStore{records: []models.CheckInRecord{
		successRecord(1, domain.ActionCheckIn, now.Add(-9*time.Hour)),
		successRecord(1, domain.ActionCheckOut, now.Add(-1*time.Hour)),
	}}
	tracker := fixedTracker(store, now)

	state, err := tracker.Today(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, state.ActionAvailable())
	assert.Equal(t, domain.ActionCheckIn, state.NextAction)
}

func TestTodayIgnoresYesterdayAndOtherUsers(t *testing.T) {
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.Local)
	store := &fakeStore{records: []models.CheckInRecord{
		successRecord(1, domain.ActionCheckIn, now.AddDate(0, 0, -1)),
		successRecord(2, domain.ActionCheckIn, now.Add(-time.Hour)),
	}}
	tracker := fixedTracker(store, now)

	state, err := tracker.Today(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, state.CheckIn)
	assert.Equal(t, domain.ActionCheckIn, state.NextAction)
}

func TestTodayActionFieldIsAuthoritative(t *testing.T) {
	// A check-out recorded before a check-in (clock skew, backfill) must still
	// partition by action, not by ordering.
	now := time.Date(2026, 3, 9, 18, 0, 0, 0, time.Local)
	store := &fakeStore{records: []models.CheckInRecord{
		successRecord(1, domain.ActionCheckOut, now.Add(-5*time.Hour)),
	}}
	tracker := fixedTracker(store, now)

	state, err := tracker.Today(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, state.CheckIn)
	require.NotNil(t, state.CheckOut)
	assert.Equal(t, domain.ActionCheckIn, state.NextAction)
}

func TestTodayStoreFailureReturnsDeterministicEmptyState(t *testing.T) {
	tracker := fixedTracker(&fakeStore{queryErr: errStoreDown}, time.Now())

	state, err := tracker.Today(context.Background(), 1)
	require.ErrorIs(t, err, errStoreDown)
	assert.Nil(t, state.CheckIn)
	assert.Nil(t, state.CheckOut)
	assert.Equal(t, domain.ActionCheckIn, state.NextAction)
}
