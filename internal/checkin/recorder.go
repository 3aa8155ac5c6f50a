package checkin

import (
	"context"
	"errors"

	"attendly/internal/domain"
	"attendly/internal/models"

	"github.com/google/uuid"
)

// Recorder persists exactly one immutable check-in record. It assigns the
// record id and the (day, action) idempotency key; the backing unique index
// is what actually closes the double-submit race between two concurrent
// orchestrator instances.
type Recorder struct {
	store RecordStore
}

func NewRecorder(store RecordStore) *Recorder {
	return &Recorder{store: store}
}

// Record writes rec to the store. It returns ok=false with a kinded error on
// failure; it never panics and never retries. A duplicate-key rejection is
// reported as KindDuplicateRecord so the caller can distinguish "already
// recorded today" from a storage outage.
func (r *Recorder) Record(ctx context.Context, rec *models.CheckInRecord) (bool, error) {
	if rec.UserID == 0 {
		return false, newError(KindMissingUser, "record has no user")
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Status == domain.RecordStatusSuccess {
		day := DayKey(rec.Timestamp)
		action := rec.Action
		rec.DayKey = &day
		rec.ActionKey = &action
	}

	if err := r.store.Append(ctx, rec); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return false, wrapError(KindDuplicateRecord, err, "%s already recorded for %s", rec.Action, DayKey(rec.Timestamp))
		}
		return false, wrapError(KindPersistenceFailure, err, "could not save %s record", rec.Action)
	}
	return true, nil
}
