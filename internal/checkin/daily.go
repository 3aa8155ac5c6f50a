package checkin

import (
	"context"
	"time"

	"attendly/internal/domain"
	"attendly/internal/models"
)

// RecordStore is the append-only event store consumed by the tracker and
// recorder. Append returns ErrDuplicate (possibly wrapped) when the
// one-success-per-(user, day, action) index rejects the row.
type RecordStore interface {
	Append(ctx context.Context, rec *models.CheckInRecord) error
	SuccessInRange(ctx context.Context, userID uint, from, to time.Time) ([]models.CheckInRecord, error)
}

// DailyState is the derived, non-persisted summary of what a user has done
// today and what they should do next.
type DailyState struct {
	CheckIn    *models.CheckInRecord `json:"check_in,omitempty"`
	CheckOut   *models.CheckInRecord `json:"check_out,omitempty"`
	NextAction string                `json:"next_action"`
}

// ActionAvailable reports whether any further action is offered today.
func (s DailyState) ActionAvailable() bool {
	return s.CheckIn == nil || s.CheckOut == nil
}

// DailyTracker derives the daily state from historical records.
type DailyTracker struct {
	store RecordStore
	now   func() time.Time
}

func NewDailyTracker(store RecordStore) *DailyTracker {
	return &DailyTracker{store: store, now: time.Now}
}

// Today loads today's success records for userID and partitions them by the
// record's action field; the action is authoritative, never inferred from
// ordering. On a store read failure it returns a deterministic empty state
// (nextAction check-in) along with the error so the caller can log it.
func (t *DailyTracker) Today(ctx context.Context, userID uint) (DailyState, error) {
	empty := DailyState{NextAction: domain.ActionCheckIn}

	now := t.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	records, err := t.store.SuccessInRange(ctx, userID, start, end)
	if err != nil {
		return empty, err
	}

	state := DailyState{}
	for i := range records {
		rec := &records[i]
		switch rec.Action {
		case domain.ActionCheckIn:
			if state.CheckIn == nil {
				state.CheckIn = rec
			}
		case domain.ActionCheckOut:
			if state.CheckOut == nil {
				state.CheckOut = rec
			}
		}
	}

	if state.CheckIn != nil && state.CheckOut == nil {
		state.NextAction = domain.ActionCheckOut
	} else {
		state.NextAction = domain.ActionCheckIn
	}
	return state, nil
}

// DayKey formats t as the local calendar day key used by the recorder's
// idempotency index.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
