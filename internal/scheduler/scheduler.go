package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/MauLang18/Cotizacion-CF/internal/domain/models"
	"github.com/MauLang18/Cotizacion-CF/internal/service/reporting"
)

const jobTimeout = 2 * time.Minute

// ReportBuilder produces the daily report.
type ReportBuilder interface {
	DailyReport(ctx context.Context, now time.Time) (models.DailyReport, error)
}

// Archive stores daily reports.
type Archive interface {
	SaveDailyReport(ctx context.Context, report models.DailyReport) error
}

// RowAppender exports one KPI row.
type RowAppender interface {
	AppendRow(ctx context.Context, values []interface{}) error
}

// Notifier pushes the summary text to operations.
type Notifier interface {
	Notify(ctx context.Context, body string) error
}

// Sinks are the optional destinations of the daily report. Nil sinks are skipped.
type Sinks struct {
	Archive  Archive
	Sheet    RowAppender
	Notifier Notifier
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	spec     string
	reports  ReportBuilder
	sinks    Sinks
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a new scheduler instance running spec in location.
func NewScheduler(spec string, location *time.Location, reports ReportBuilder, sinks Sinks, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.Local
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(location)),
		spec:     spec,
		reports:  reports,
		sinks:    sinks,
		location: location,
		logger:   logger,
		now:      time.Now,
	}
}

// Start registers the daily report job and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("spec", s.spec), zap.String("location", s.location.String()))

	if _, err := s.cron.AddFunc(s.spec, s.runDailyReport); err != nil {
		return fmt.Errorf("schedule daily report %q: %w", s.spec, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runDailyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.RunOnce(ctx); err != nil {
		s.logger.Error("daily report failed", zap.Error(err))
		return
	}
	s.logger.Info("daily report completed")
}

// RunOnce builds the report, archives and exports it concurrently, then sends
// the summary. The summary is sent even when archival or export failed.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	report, err := s.reports.DailyReport(ctx, s.now())
	if err != nil {
		return fmt.Errorf("build daily report: %w", err)
	}

	// Sinks are independent: a failing archive must not cancel the export.
	var (
		g                   errgroup.Group
		archiveErr, rowsErr error
	)
	if s.sinks.Archive != nil {
		g.Go(func() error {
			if err := s.sinks.Archive.SaveDailyReport(ctx, report); err != nil {
				archiveErr = fmt.Errorf("archive report: %w", err)
			}
			return archiveErr
		})
	}
	if s.sinks.Sheet != nil {
		g.Go(func() error {
			if err := s.sinks.Sheet.AppendRow(ctx, reporting.Row(report)); err != nil {
				rowsErr = fmt.Errorf("export report row: %w", err)
			}
			return rowsErr
		})
	}
	_ = g.Wait()
	storeErr := errors.Join(archiveErr, rowsErr)
	if storeErr != nil {
		s.logger.Warn("daily report storage incomplete", zap.Error(storeErr))
	}

	if s.sinks.Notifier != nil {
		if err := s.sinks.Notifier.Notify(ctx, reporting.Summary(report)); err != nil {
			return fmt.Errorf("send daily summary: %w", err)
		}
	}

	return storeErr
}
