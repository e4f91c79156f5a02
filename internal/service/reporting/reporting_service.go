package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/MauLang18/Cotizacion-CF/internal/domain/models"
)

const (
	dateLayout = "2006-01-02"
	topN       = 3
)

// SnapshotSource produces a fresh dashboard snapshot.
type SnapshotSource interface {
	Refresh(ctx context.Context) (models.Snapshot, error)
}

// Service builds the daily cargo report sent to operations.
type Service struct {
	source   SnapshotSource
	location *time.Location
	logger   *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(source SnapshotSource, location *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.Local
	}
	return &Service{source: source, location: location, logger: logger}
}

// DailyReport refreshes the dashboard and wraps it as the report for now's date.
func (s *Service) DailyReport(ctx context.Context, now time.Time) (models.DailyReport, error) {
	snap, err := s.source.Refresh(ctx)
	if err != nil {
		return models.DailyReport{}, fmt.Errorf("refresh dashboard: %w", err)
	}

	local := now.In(s.location)
	report := models.DailyReport{
		Date:      time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location),
		Snapshot:  snap,
		CreatedAt: now.UTC(),
	}

	s.logger.Debug("daily report built",
		zap.String("date", report.Date.Format(dateLayout)),
		zap.Int("total", snap.Counts.Total))

	return report, nil
}

// Summary renders the report as a short plain-text message.
func Summary(report models.DailyReport) string {
	c := report.Snapshot.Counts

	var b strings.Builder
	fmt.Fprintf(&b, "Cargas %s\n", report.Date.Format(dateLayout))
	fmt.Fprintf(&b, "Hoy: %d | Semana: %d | Mes: %d | Total: %d", c.Today, c.Week, c.Month, c.Total)

	writeTop(&b, "Ejecutivos", report.Snapshot.Charts.Executive)
	writeTop(&b, "Preestados", report.Snapshot.Charts.Status)
	writeTop(&b, "Puertos de entrada", report.Snapshot.Charts.POE)

	return b.String()
}

// Row flattens the report for a spreadsheet append.
func Row(report models.DailyReport) []interface{} {
	c := report.Snapshot.Counts
	return []interface{}{report.Date.Format(dateLayout), c.Today, c.Week, c.Month, c.Total, report.Snapshot.Generation}
}

func writeTop(b *strings.Builder, title string, series []models.SeriesPoint) {
	if len(series) == 0 {
		return
	}
	n := len(series)
	if n > topN {
		n = topN
	}

	parts := make([]string, 0, n)
	for _, p := range series[:n] {
		parts = append(parts, fmt.Sprintf("%s (%d)", p.Label, p.Value))
	}
	fmt.Fprintf(b, "\n%s: %s", title, strings.Join(parts, ", "))
}
