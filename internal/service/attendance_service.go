package service

import (
	"context"
	"sync"
	"time"

	"attendly/internal/checkin"
	"attendly/internal/models"
	"attendly/internal/repository"
)

// AttendanceService owns one orchestrator per user so the in-flight guard
// applies to double-taps from the same account while separate accounts never
// block each other. The cross-instance daily invariant is enforced by the
// record store's unique index, not here.
type AttendanceService struct {
	mu            sync.Mutex
	orchestrators map[uint]*checkin.Orchestrator

	locRepo     *repository.OfficeLocationRepository
	settingRepo *repository.SettingRepository
	recordRepo  *repository.RecordRepository
	ipLookup    checkin.IPLookup

	positionTimeout time.Duration
}

func NewAttendanceService(
	locRepo *repository.OfficeLocationRepository,
	settingRepo *repository.SettingRepository,
	recordRepo *repository.RecordRepository,
	ipLookup checkin.IPLookup,
	positionTimeout time.Duration,
) *AttendanceService {
	return &AttendanceService{
		orchestrators:   make(map[uint]*checkin.Orchestrator),
		locRepo:         locRepo,
		settingRepo:     settingRepo,
		recordRepo:      recordRepo,
		ipLookup:        ipLookup,
		positionTimeout: positionTimeout,
	}
}

func (s *AttendanceService) orchestratorFor(userID uint) *checkin.Orchestrator {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orchestrators[userID]; ok {
		return o
	}
	o := checkin.NewOrchestrator(
		checkin.NewResolver(s.locRepo, s.settingRepo),
		checkin.NewDailyTracker(s.recordRepo),
		checkin.NewRecorder(s.recordRepo),
		s.ipLookup,
	)
	o.SetPositionTimeout(s.positionTimeout)
	s.orchestrators[userID] = o
	return o
}

// AttemptCheckIn runs one attempt for the authenticated user. The assigned
// office comes from the stored profile, never from the request payload.
func (s *AttendanceService) AttemptCheckIn(ctx context.Context, user *models.User, mode checkin.Mode, pos checkin.PositionSource) checkin.AttemptResult {
	return s.orchestratorFor(user.ID).Attempt(ctx, user.ID, user.AssignedOffice, mode, pos)
}

func (s *AttendanceService) DailyState(ctx context.Context, userID uint) (checkin.DailyState, error) {
	return s.orchestratorFor(userID).DailyState(ctx, userID)
}
