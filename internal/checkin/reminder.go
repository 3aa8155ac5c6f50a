package checkin

import (
	"sync"
	"time"
)

// ReminderSink receives emitted reminders, e.g. a websocket hub or a push
// notification service.
type ReminderSink interface {
	SendReminder(userID uint, expectedAction string)
}

const (
	defaultMaxReminders     = 2
	defaultReminderInterval = 5 * time.Minute
)

// ReminderScheduler emits rate-limited reminders while an expected action is
// outstanding. State is scoped to the scheduler value itself (one per
// session), never to the package, so concurrent sessions do not interfere.
type ReminderScheduler struct {
	mu           sync.Mutex
	userID       uint
	count        int
	last         time.Time
	maxReminders int
	interval     time.Duration
	sink         ReminderSink
	now          func() time.Time
}

func NewReminderScheduler(userID uint, sink ReminderSink) *ReminderScheduler {
	return &ReminderScheduler{
		userID:       userID,
		maxReminders: defaultMaxReminders,
		interval:     defaultReminderInterval,
		sink:         sink,
		now:          time.Now,
	}
}

// CheckAndSend emits one reminder for expectedAction if fewer than
// maxReminders have been sent today and at least one interval has elapsed
// since the last one. Returns whether a reminder was emitted.
func (s *ReminderScheduler) CheckAndSend(expectedAction string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetIfNewDayLocked()

	if s.count >= s.maxReminders {
		return false
	}
	now := s.now()
	if !s.last.IsZero() && now.Sub(s.last) < s.interval {
		return false
	}
	s.count++
	s.last = now
	if s.sink != nil {
		s.sink.SendReminder(s.userID, expectedAction)
	}
	return true
}

// ResetIfNewDay clears the daily counter when the last reminder was emitted
// on an earlier calendar day. CheckAndSend also applies the rollover inline,
// so the periodic sweep that calls this only keeps idle schedulers tidy.
func (s *ReminderScheduler) ResetIfNewDay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetIfNewDayLocked()
}

func (s *ReminderScheduler) resetIfNewDayLocked() {
	if s.last.IsZero() {
		return
	}
	if DayKey(s.last) != DayKey(s.now()) {
		s.count = 0
		s.last = time.Time{}
	}
}
