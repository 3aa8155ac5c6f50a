package service

import (
	"context"
	"sync"
	"testing"

	"attendly/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSink struct {
	mu    sync.Mutex
	users []uint
}

func (s *captureSink) SendReminder(userID uint, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, userID)
}

func TestReminderServiceKeepsCountersPerUser(t *testing.T) {
	sink := &captureSink{}
	svc := NewReminderService(context.Background(), sink)

	require.True(t, svc.CheckAndSend(1, domain.ActionCheckIn))
	// Same user again immediately is inside the interval.
	assert.False(t, svc.CheckAndSend(1, domain.ActionCheckIn))
	// A different user has their own bucket.
	assert.True(t, svc.CheckAndSend(2, domain.ActionCheckIn))

	assert.Equal(t, []uint{1, 2}, sink.users)
}

func TestReminderServiceReusesSchedulers(t *testing.T) {
	svc := NewReminderService(context.Background(), &captureSink{})

	first := svc.schedulerFor(1)
	assert.Same(t, first, svc.schedulerFor(1))
	assert.NotSame(t, first, svc.schedulerFor(2))
	assert.Len(t, svc.schedulers, 2)

	// The rollover sweep touches every scheduler without growing the map.
	svc.resetAll()
	assert.Len(t, svc.schedulers, 2)
}
