package checkin

import (
	"context"
	"errors"
	"sync"
	"time"

	"attendly/internal/domain"
	"attendly/internal/models"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }
func ptrS(v string) *string   { return &v }

type fakeDirectory struct {
	byID   map[uint]*models.OfficeLocation
	byName map[string]*models.OfficeLocation
	hq     *models.OfficeLocation
	err    error
}

func (d *fakeDirectory) FindByID(_ context.Context, id uint) (*models.OfficeLocation, error) {
	return d.byID[id], d.err
}

func (d *fakeDirectory) FindByName(_ context.Context, name string) (*models.OfficeLocation, error) {
	return d.byName[name], d.err
}

func (d *fakeDirectory) Headquarters(_ context.Context) (*models.OfficeLocation, error) {
	return d.hq, d.err
}

type fakeSettings struct {
	limit int
	err   error
}

func (s *fakeSettings) DistanceLimitMeters(context.Context) (int, error) { return s.limit, s.err }

// fakeStore enforces the same unique index as the real record store.
type fakeStore struct {
	mu        sync.Mutex
	records   []models.CheckInRecord
	appendErr error
	queryErr  error
}

func (s *fakeStore) Append(_ context.Context, rec *models.CheckInRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	if rec.DayKey != nil {
		for _, existing := range s.records {
			if existing.UserID == rec.UserID && existing.DayKey != nil &&
				*existing.DayKey == *rec.DayKey && existing.Action == rec.Action {
				return ErrDuplicate
			}
		}
	}
	s.records = append(s.records, *rec)
	return nil
}

func (s *fakeStore) SuccessInRange(_ context.Context, userID uint, from, to time.Time) ([]models.CheckInRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	var out []models.CheckInRecord
	for _, rec := range s.records {
		if rec.UserID == userID && rec.Status == domain.RecordStatusSuccess &&
			!rec.Timestamp.Before(from) && rec.Timestamp.Before(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

type fakePosition struct {
	pos Position
	err error
}

func (p *fakePosition) Current(context.Context) (Position, error) { return p.pos, p.err }

type fakeIPLookup struct {
	ip  string
	err error
}

func (l *fakeIPLookup) PublicIP(context.Context) (string, error) { return l.ip, l.err }

type fakeSink struct {
	mu      sync.Mutex
	emitted []string
}

func (s *fakeSink) SendReminder(_ uint, expectedAction string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emitted = append(s.emitted, expectedAction)
}

func (s *fakeSink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.emitted)
}

var errStoreDown = errors.New("store unavailable")

// convertedOffice builds a usable geofence directory entry.
func convertedOffice(id uint, name string, lat, lng float64, radius *int) *models.OfficeLocation {
	return &models.OfficeLocation{
		ID:           id,
		Name:         name,
		Latitude:     ptrF(lat),
		Longitude:    ptrF(lng),
		GPSStatus:    domain.GPSStatusConverted,
		RadiusMeters: radius,
	}
}
