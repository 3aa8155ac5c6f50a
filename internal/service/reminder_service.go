package service

import (
	"context"
	"sync"
	"time"

	"attendly/internal/checkin"
)

const reminderSweepCadence = time.Hour

// ReminderService keeps one rate-limited scheduler per user. Each scheduler's
// counters are private to it; nothing here is package-global. A single hourly
// sweep handles day rollover for idle schedulers, so the map never pins a
// goroutine per user.
type ReminderService struct {
	mu         sync.Mutex
	schedulers map[uint]*checkin.ReminderScheduler
	sink       checkin.ReminderSink
}

func NewReminderService(ctx context.Context, sink checkin.ReminderSink) *ReminderService {
	s := &ReminderService{
		schedulers: make(map[uint]*checkin.ReminderScheduler),
		sink:       sink,
	}
	go s.sweepLoop(ctx)
	return s
}

func (s *ReminderService) schedulerFor(userID uint) *checkin.ReminderScheduler {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sched, ok := s.schedulers[userID]; ok {
		return sched
	}
	sched := checkin.NewReminderScheduler(userID, s.sink)
	s.schedulers[userID] = sched
	return sched
}

// CheckAndSend emits a reminder for userID if the daily cap and interval
// allow it. Returns whether a reminder was emitted.
func (s *ReminderService) CheckAndSend(userID uint, expectedAction string) bool {
	return s.schedulerFor(userID).CheckAndSend(expectedAction)
}

func (s *ReminderService) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(reminderSweepCadence)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.resetAll()
		}
	}
}

func (s *ReminderService) resetAll() {
	s.mu.Lock()
	scheds := make([]*checkin.ReminderScheduler, 0, len(s.schedulers))
	for _, sched := range s.schedulers {
		scheds = append(scheds, sched)
	}
	s.mu.Unlock()
	for _, sched := range scheds {
		sched.ResetIfNewDay()
	}
}
