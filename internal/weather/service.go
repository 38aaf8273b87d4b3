package weather

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Resolver turns a free-form place name into a Location.
// Satisfied by the geocode package implementations.
type Resolver interface {
	Resolve(ctx context.Context, name string) (Location, error)
}

// Service orchestrates geocoding and the weather providers for one run.
// Everything is sequential: one control path, no shared state.
type Service struct {
	resolver Resolver
	history  HistoryProvider
	current  []Provider
}

// NewService creates a new Service.
func NewService(resolver Resolver, history HistoryProvider, current []Provider) *Service {
	return &Service{
		resolver: resolver,
		history:  history,
		current:  current,
	}
}

// Resolve delegates to the configured geocoder.
func (s *Service) Resolve(ctx context.Context, name string) (Location, error) {
	return s.resolver.Resolve(ctx, name)
}

// History fetches the observation series for the date range. The returned
// series is never empty: a response with zero observations surfaces as an
// error from the provider.
func (s *Service) History(ctx context.Context, loc Location, from, to time.Time) (Series, error) {
	if s.history == nil {
		return nil, fmt.Errorf("no history provider configured")
	}

	series, err := s.history.FetchHistory(ctx, loc, from, to)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, &ParseError{Source: s.history.Name(), Err: ErrEmptySeries}
	}

	// The API returns whole days; a range ending today includes hours that
	// are still in the future. Those are forecasts, not observations.
	if now := time.Now().UTC(); series.Last().Timestamp.After(now) {
		series = series.Between(series.First().Timestamp, now)
		if len(series) == 0 {
			return nil, &ParseError{Source: s.history.Name(), Err: ErrEmptySeries}
		}
	}
	return series, nil
}

// Current polls each configured provider in turn and aggregates the
// successful readings into one snapshot. Individual provider failures are
// logged and skipped; the call fails only when every provider fails.
func (s *Service) Current(ctx context.Context, loc Location) (Snapshot, error) {
	if len(s.current) == 0 {
		return Snapshot{}, fmt.Errorf("no weather providers configured")
	}

	var readings []ProviderReading
	for _, p := range s.current {
		r, err := p.Fetch(ctx, loc)
		if err != nil {
			// Log and continue; we want partial success when possible.
			log.Printf("provider %s fetch failed for %s: %v", p.Name(), loc.Key(), err)
			continue
		}
		readings = append(readings, r)
	}

	if len(readings) == 0 {
		return Snapshot{}, fmt.Errorf("no provider returned current conditions for %s", loc.Key())
	}

	return AggregateReadings(loc, readings), nil
}
