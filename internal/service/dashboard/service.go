package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/MauLang18/Cotizacion-CF/internal/config"
	"github.com/MauLang18/Cotizacion-CF/internal/domain/models"
)

// ErrNoSnapshot is returned by Latest before the first successful refresh.
var ErrNoSnapshot = errors.New("no dashboard snapshot yet")

// ShipmentSource is the slice of the remote gateway the dashboard needs.
type ShipmentSource interface {
	ListShipments(ctx context.Context, filter models.Filter) ([]models.ShipmentRecord, error)
}

// Service computes dashboard snapshots. Overlapping refreshes are ordered by a
// generation counter: a result is stored only if no newer one was stored first.
type Service struct {
	source    ShipmentSource
	labels    Resolver
	excluded  StatusSet
	location  *time.Location
	weekStart time.Weekday
	logger    *zap.Logger
	now       func() time.Time

	generation atomic.Uint64

	mu     sync.RWMutex
	latest *models.Snapshot
}

// NewService wires a new dashboard service instance.
func NewService(source ShipmentSource, labels Resolver, cfg config.DashboardConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source:    source,
		labels:    labels,
		excluded:  NewStatusSet(cfg.ExcludedStatuses...),
		location:  cfg.Location(),
		weekStart: cfg.WeekStart,
		logger:    logger,
		now:       time.Now,
	}
}

// Refresh fetches all shipments and recomputes the dashboard. The returned
// snapshot is always the one computed by this call, even when a newer refresh
// already replaced it as Latest.
func (s *Service) Refresh(ctx context.Context) (models.Snapshot, error) {
	gen := s.generation.Add(1)

	records, err := s.source.ListShipments(ctx, models.Filter{})
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("fetch shipments: %w", err)
	}

	snap := s.Compute(records, s.now())
	snap.Generation = gen

	if s.store(snap) {
		s.logger.Debug("dashboard snapshot applied",
			zap.Uint64("generation", gen),
			zap.Int("total", snap.Counts.Total))
	} else {
		s.logger.Debug("stale dashboard snapshot discarded", zap.Uint64("generation", gen))
	}

	return snap, nil
}

// Compute runs the aggregation pipeline on already-fetched records. ETAs sent
// without an offset are read in the dashboard location, the same one the
// calendar windows use.
func (s *Service) Compute(records []models.ShipmentRecord, now time.Time) models.Snapshot {
	active := FilterActive(pinETAs(records, s.location), now, s.excluded)
	windows := CalendarWindows(now, s.location, s.weekStart)

	return models.Snapshot{
		FetchedAt: now,
		Counts:    CountBuckets(active, windows),
		Charts:    BuildCharts(GroupAll(active), s.labels),
	}
}

// Latest returns the newest applied snapshot.
func (s *Service) Latest() (models.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return models.Snapshot{}, ErrNoSnapshot
	}
	return *s.latest, nil
}

func (s *Service) store(snap models.Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest != nil && s.latest.Generation > snap.Generation {
		return false
	}
	s.latest = &snap
	return true
}

// pinETAs returns a copy of records with floating ETAs placed in loc.
func pinETAs(records []models.ShipmentRecord, loc *time.Location) []models.ShipmentRecord {
	out := make([]models.ShipmentRecord, len(records))
	for i, r := range records {
		r.ETA = r.ETA.In(loc)
		out[i] = r
	}
	return out
}
