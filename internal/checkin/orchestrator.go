package checkin

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"attendly/internal/domain"
	"attendly/internal/models"

	"github.com/sirupsen/logrus"
)

// Mode selects the verification path for one attempt. ModeIP is a deliberate
// lower-assurance fallback: it records the caller's public IP and skips
// distance validation entirely.
type Mode string

const (
	ModeLocation Mode = "location"
	ModeIP       Mode = "ip"
)

// PositionSource yields the device position for one attempt. Implementations
// must honor ctx cancellation; errors should carry KindPermissionDenied,
// KindPositionUnavailable or KindTimeout.
type PositionSource interface {
	Current(ctx context.Context) (Position, error)
}

// IPLookup fetches the caller's public IP for the IP path.
type IPLookup interface {
	PublicIP(ctx context.Context) (string, error)
}

// AttemptResult is the structured outcome of one check-in attempt. Exactly
// one of Success or ErrKind is meaningful; errors never escape as panics.
type AttemptResult struct {
	Success             bool                  `json:"success"`
	Action              string                `json:"action,omitempty"`
	DistanceMeters      int                   `json:"distance_meters,omitempty"`
	AllowedRadiusMeters int                   `json:"allowed_radius_meters,omitempty"`
	TargetName          string                `json:"target_name,omitempty"`
	ErrKind             Kind                  `json:"error_kind,omitempty"`
	Message             string                `json:"message,omitempty"`
	Record              *models.CheckInRecord `json:"record,omitempty"`
	State               *DailyState           `json:"state,omitempty"`
}

func failure(err error) AttemptResult {
	kind := KindOf(err)
	if kind == "" {
		kind = KindPersistenceFailure
	}
	msg := err.Error()
	var ce *Error
	if errors.As(err, &ce) {
		msg = ce.Message
	}
	return AttemptResult{ErrKind: kind, Message: msg}
}

// Orchestrator runs the per-attempt state machine: acquire position, resolve
// target, validate geofence, derive the action, persist, refresh. Steps are
// strictly sequential and nothing is retried; every failure is terminal for
// that attempt.
type Orchestrator struct {
	resolver *Resolver
	tracker  *DailyTracker
	recorder *Recorder
	ip       IPLookup

	positionTimeout time.Duration
	now             func() time.Time

	inFlight   atomic.Bool
	generation atomic.Uint64
}

func NewOrchestrator(resolver *Resolver, tracker *DailyTracker, recorder *Recorder, ip IPLookup) *Orchestrator {
	return &Orchestrator{
		resolver:        resolver,
		tracker:         tracker,
		recorder:        recorder,
		ip:              ip,
		positionTimeout: 10 * time.Second,
		now:             time.Now,
	}
}

// SetPositionTimeout overrides the default 10s position acquisition deadline.
func (o *Orchestrator) SetPositionTimeout(d time.Duration) {
	if d > 0 {
		o.positionTimeout = d
	}
}

// Abort invalidates any in-flight attempt. A position result that arrives
// after Abort is discarded instead of being applied to a torn-down caller.
func (o *Orchestrator) Abort() {
	o.generation.Add(1)
}

// DailyState returns the derived state for userID.
func (o *Orchestrator) DailyState(ctx context.Context, userID uint) (DailyState, error) {
	return o.tracker.Today(ctx, userID)
}

// Attempt runs one check-in attempt for the authenticated userID. The
// assigned office identifier comes from the employee profile, never from the
// request payload. The guard against overlapping attempts is local to this
// orchestrator instance; the recorder's unique index is what protects the
// daily invariant across instances.
func (o *Orchestrator) Attempt(ctx context.Context, userID uint, assignedOffice *string, mode Mode, pos PositionSource) AttemptResult {
	if userID == 0 {
		return failure(newError(KindMissingUser, "no authenticated user"))
	}
	if !o.inFlight.CompareAndSwap(false, true) {
		return failure(newError(KindAttemptInProgress, "another attempt is still in progress"))
	}
	defer o.inFlight.Store(false)

	gen := o.generation.Load()

	log := logrus.WithFields(logrus.Fields{"user_id": userID, "mode": mode})

	var res AttemptResult
	switch mode {
	case ModeIP:
		res = o.attemptIP(ctx, userID, log)
	default:
		res = o.attemptLocation(ctx, userID, assignedOffice, pos, gen, log)
	}

	if res.Success {
		// Refresh so subsequent reads reflect the new record.
		state, err := o.tracker.Today(ctx, userID)
		if err != nil {
			log.WithError(err).Warn("daily state refresh failed after successful check-in")
		} else {
			res.State = &state
		}
	}
	return res
}

func (o *Orchestrator) attemptLocation(ctx context.Context, userID uint, assignedOffice *string, pos PositionSource, gen uint64, log *logrus.Entry) AttemptResult {
	if pos == nil {
		return failure(newError(KindPositionUnavailable, "no position source"))
	}

	posCtx, cancel := context.WithTimeout(ctx, o.positionTimeout)
	defer cancel()
	position, err := pos.Current(posCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = wrapError(KindTimeout, err, "position request timed out")
		}
		log.WithError(err).Info("position acquisition failed")
		return failure(err)
	}
	if o.generation.Load() != gen {
		log.Info("discarding stale position result after abort")
		return failure(newError(KindPositionUnavailable, "attempt aborted"))
	}

	target, err := o.resolver.Resolve(ctx, assignedOffice)
	if err != nil {
		log.WithError(err).Warn("target resolution failed")
		return failure(err)
	}

	check := ValidateGeofence(position, *target)
	if !check.WithinRange {
		log.WithFields(logrus.Fields{
			"distance_m": check.DistanceMeters,
			"allowed_m":  check.AllowedRadiusMeters,
			"target":     target.Name,
		}).Info("check-in rejected outside geofence")
		return AttemptResult{
			ErrKind:             KindDistanceExceeded,
			Message:             "too far from " + target.Name,
			DistanceMeters:      check.DistanceMeters,
			AllowedRadiusMeters: check.AllowedRadiusMeters,
			TargetName:          target.Name,
		}
	}

	state, err := o.tracker.Today(ctx, userID)
	if err != nil {
		log.WithError(err).Error("daily state read failed")
		return failure(wrapError(KindPersistenceFailure, err, "could not load today's records"))
	}
	if !state.ActionAvailable() {
		return failure(newError(KindNoActionAvailable, "both check-in and check-out are already recorded today"))
	}

	now := o.now()
	rec := &models.CheckInRecord{
		UserID:          userID,
		Timestamp:       now,
		SourceType:      domain.SourceLocation,
		Status:          domain.RecordStatusSuccess,
		Action:          state.NextAction,
		Latitude:        &position.Latitude,
		Longitude:       &position.Longitude,
		DistanceMeters:  &check.DistanceMeters,
		TargetLatitude:  &target.Latitude,
		TargetLongitude: &target.Longitude,
		TargetName:      target.Name,
		LocationName:    target.Name,
	}
	if ok, err := o.recorder.Record(ctx, rec); !ok {
		log.WithError(err).Error("record persistence failed")
		return failure(err)
	}

	log.WithFields(logrus.Fields{"action": rec.Action, "distance_m": check.DistanceMeters}).Info("check-in recorded")
	return AttemptResult{
		Success:             true,
		Action:              rec.Action,
		DistanceMeters:      check.DistanceMeters,
		AllowedRadiusMeters: check.AllowedRadiusMeters,
		TargetName:          target.Name,
		Record:              rec,
	}
}

func (o *Orchestrator) attemptIP(ctx context.Context, userID uint, log *logrus.Entry) AttemptResult {
	if o.ip == nil {
		return failure(newError(KindNetworkFailure, "ip lookup is not configured"))
	}
	ip, err := o.ip.PublicIP(ctx)
	if err != nil {
		log.WithError(err).Info("public ip lookup failed")
		return failure(wrapError(KindNetworkFailure, err, "public ip lookup failed"))
	}

	state, err := o.tracker.Today(ctx, userID)
	if err != nil {
		log.WithError(err).Error("daily state read failed")
		return failure(wrapError(KindPersistenceFailure, err, "could not load today's records"))
	}
	if !state.ActionAvailable() {
		return failure(newError(KindNoActionAvailable, "both check-in and check-out are already recorded today"))
	}

	rec := &models.CheckInRecord{
		UserID:     userID,
		Timestamp:  o.now(),
		SourceType: domain.SourceIP,
		Status:     domain.RecordStatusSuccess,
		Action:     state.NextAction,
		IPAddress:  ip,
	}
	if ok, err := o.recorder.Record(ctx, rec); !ok {
		log.WithError(err).Error("record persistence failed")
		return failure(err)
	}

	log.WithFields(logrus.Fields{"action": rec.Action, "ip": ip}).Info("ip check-in recorded")
	return AttemptResult{Success: true, Action: rec.Action, Record: rec}
}
