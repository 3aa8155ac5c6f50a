package checkin

import (
	"testing"
	"time"

	"attendly/internal/domain"

	"github.com/stretchr/testify/assert"
)

func reminderAt(sink ReminderSink, at *time.Time) *ReminderScheduler {
	s := NewReminderScheduler(1, sink)
	s.now = func() time.Time { return *at }
	return s
}

func TestReminderEmitsAtMostMaxPerDay(t *testing.T) {
	sink := &fakeSink{}
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.Local)
	s := reminderAt(sink, &now)

	emitted := 0
	for i := 0; i < 10; i++ {
		if s.CheckAndSend(domain.ActionCheckIn) {
			emitted++
		}
		now = now.Add(6 * time.Minute)
	}
	assert.Equal(t, defaultMaxReminders, emitted)
	assert.Equal(t, defaultMaxReminders, sink.len())
}

func TestReminderRespectsInterval(t *testing.T) {
	sink := &fakeSink{}
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.Local)
	s := reminderAt(sink, &now)

	assert.True(t, s.CheckAndSend(domain.ActionCheckIn))

	now = now.Add(time.Minute)
	assert.False(t, s.CheckAndSend(domain.ActionCheckIn), "1 minute later is inside the interval")

	now = now.Add(4 * time.Minute)
	assert.True(t, s.CheckAndSend(domain.ActionCheckIn), "exactly one interval later is allowed")
}

func TestReminderResetsOnDayRollover(t *testing.T) {
	sink := &fakeSink{}
	now := time.Date(2026, 3, 9, 23, 0, 0, 0, time.Local)
	s := reminderAt(sink, &now)

	assert.True(t, s.CheckAndSend(domain.ActionCheckOut))
	now = now.Add(10 * time.Minute)
	assert.True(t, s.CheckAndSend(domain.ActionCheckOut))
	now = now.Add(10 * time.Minute)
	assert.False(t, s.CheckAndSend(domain.ActionCheckOut), "daily cap reached")

	// Next morning the counter resets.
	now = time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local)
	assert.True(t, s.CheckAndSend(domain.ActionCheckIn))
	assert.Equal(t, 3, sink.len())
}

func TestReminderResetIfNewDayClearsIdleScheduler(t *testing.T) {
	sink := &fakeSink{}
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.Local)
	s := reminderAt(sink, &now)

	assert.True(t, s.CheckAndSend(domain.ActionCheckIn))
	now = now.Add(6 * time.Minute)
	assert.True(t, s.CheckAndSend(domain.ActionCheckIn))
	assert.Equal(t, defaultMaxReminders, s.count)

	// The sweep clears the counter for a scheduler nobody touched today.
	now = time.Date(2026, 3, 10, 1, 0, 0, 0, time.Local)
	s.ResetIfNewDay()
	assert.Equal(t, 0, s.count)
	assert.True(t, s.last.IsZero())
}

func TestReminderNilSinkStillCounts(t *testing.T) {
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.Local)
	s := NewReminderScheduler(1, nil)
	s.now = func() time.Time { return now }

	assert.True(t, s.CheckAndSend(domain.ActionCheckIn))
}
