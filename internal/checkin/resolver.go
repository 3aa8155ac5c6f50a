package checkin

import (
	"context"
	"strconv"

	"attendly/internal/domain"
	"attendly/internal/models"
)

// LocationDirectory is the read-only office lookup consumed by the resolver.
// Implementations return (nil, nil) when no location matches.
type LocationDirectory interface {
	FindByID(ctx context.Context, id uint) (*models.OfficeLocation, error)
	FindByName(ctx context.Context, name string) (*models.OfficeLocation, error)
	Headquarters(ctx context.Context) (*models.OfficeLocation, error)
}

// SettingsStore exposes the admin-editable default geofence radius. It is
// consulted on every resolution so admin changes take effect immediately.
type SettingsStore interface {
	DistanceLimitMeters(ctx context.Context) (int, error)
}

// lookupStrategy is one way of matching an assigned-office identifier to a
// directory entry. Strategies are tried in order; the first hit wins.
type lookupStrategy func(ctx context.Context, dir LocationDirectory, identifier string) (*models.OfficeLocation, error)

func lookupByID(ctx context.Context, dir LocationDirectory, identifier string) (*models.OfficeLocation, error) {
	id, err := strconv.ParseUint(identifier, 10, 32)
	if err != nil {
		return nil, nil
	}
	return dir.FindByID(ctx, uint(id))
}

func lookupByName(ctx context.Context, dir LocationDirectory, identifier string) (*models.OfficeLocation, error) {
	return dir.FindByName(ctx, identifier)
}

// Resolver turns an employee's assigned office identifier into a geofence
// target. Staff with no assigned office resolve to headquarters; this is a
// named mode, not a geofence bypass, so every check-in is validated against
// some target.
type Resolver struct {
	dir        LocationDirectory
	settings   SettingsStore
	strategies []lookupStrategy
}

func NewResolver(dir LocationDirectory, settings SettingsStore) *Resolver {
	return &Resolver{
		dir:        dir,
		settings:   settings,
		strategies: []lookupStrategy{lookupByID, lookupByName},
	}
}

// Resolve returns the geofence target for the given assigned-office
// identifier. A nil or empty identifier selects headquarters. Errors carry
// KindLocationNotFound when no directory entry matches, and
// KindLocationNotConfigured when the entry exists but has no usable
// coordinates yet.
func (r *Resolver) Resolve(ctx context.Context, assigned *string) (*Target, error) {
	var loc *models.OfficeLocation
	var err error

	if assigned == nil || *assigned == "" {
		loc, err = r.dir.Headquarters(ctx)
		if err != nil {
			return nil, wrapError(KindLocationNotFound, err, "headquarters lookup failed")
		}
		if loc == nil {
			return nil, newError(KindLocationNotFound, "headquarters location is not registered")
		}
	} else {
		for _, strategy := range r.strategies {
			loc, err = strategy(ctx, r.dir, *assigned)
			if err != nil {
				return nil, wrapError(KindLocationNotFound, err, "office lookup failed for %q", *assigned)
			}
			if loc != nil {
				break
			}
		}
		if loc == nil {
			return nil, newError(KindLocationNotFound, "no office location matches %q", *assigned)
		}
	}

	if loc.GPSStatus != domain.GPSStatusConverted || loc.Latitude == nil || loc.Longitude == nil {
		return nil, newError(KindLocationNotConfigured, "office %q has no usable coordinates (gps status %s)", loc.Name, loc.GPSStatus)
	}

	radius := 0
	if loc.RadiusMeters != nil {
		radius = *loc.RadiusMeters
	}
	if radius <= 0 {
		radius, err = r.settings.DistanceLimitMeters(ctx)
		if err != nil || radius <= 0 {
			radius = domain.DefaultDistanceLimitM
		}
	}

	return &Target{
		Name:         loc.Name,
		Latitude:     *loc.Latitude,
		Longitude:    *loc.Longitude,
		RadiusMeters: radius,
	}, nil
}
