package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MauLang18/Cotizacion-CF/internal/domain/models"
)

type stubReports struct {
	report models.DailyReport
	err    error
}

func (s stubReports) DailyReport(context.Context, time.Time) (models.DailyReport, error) {
	return s.report, s.err
}

type recorder struct {
	mu       sync.Mutex
	saved    []models.DailyReport
	rows     [][]interface{}
	messages []string
	saveErr  error
}

func (r *recorder) SaveDailyReport(_ context.Context, report models.DailyReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, report)
	return r.saveErr
}

func (r *recorder) AppendRow(_ context.Context, values []interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, values)
	return nil
}

func (r *recorder) Notify(_ context.Context, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, body)
	return nil
}

func sampleReport() models.DailyReport {
	return models.DailyReport{
		Date:     time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
		Snapshot: models.Snapshot{Counts: models.Counts{Today: 2, Total: 9}},
	}
}

func TestRunOnce_AllSinks(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler("0 20 * * *", time.UTC, stubReports{report: sampleReport()},
		Sinks{Archive: rec, Sheet: rec, Notifier: rec}, nil)

	require.NoError(t, s.RunOnce(context.Background()))

	assert.Len(t, rec.saved, 1)
	require.Len(t, rec.rows, 1)
	assert.Equal(t, "2024-06-11", rec.rows[0][0])
	require.Len(t, rec.messages, 1)
	assert.Contains(t, rec.messages[0], "Hoy: 2")
}

func TestRunOnce_NoSinks(t *testing.T) {
	s := NewScheduler("0 20 * * *", nil, stubReports{report: sampleReport()}, Sinks{}, nil)
	assert.NoError(t, s.RunOnce(context.Background()))
}

func TestRunOnce_ArchiveFailureStillNotifies(t *testing.T) {
	rec := &recorder{saveErr: errors.New("mongo down")}
	s := NewScheduler("0 20 * * *", time.UTC, stubReports{report: sampleReport()},
		Sinks{Archive: rec, Notifier: rec}, nil)

	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo down")
	assert.Len(t, rec.messages, 1)
}

func TestRunOnce_ReportFailure(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler("0 20 * * *", time.UTC, stubReports{err: errors.New("api down")},
		Sinks{Archive: rec, Notifier: rec}, nil)

	require.Error(t, s.RunOnce(context.Background()))
	assert.Empty(t, rec.saved)
	assert.Empty(t, rec.messages)
}

func TestStart_InvalidSpec(t *testing.T) {
	s := NewScheduler("not a cron", time.UTC, stubReports{}, Sinks{}, nil)
	assert.Error(t, s.Start())
}

func TestStartStop(t *testing.T) {
	s := NewScheduler("@every 1h", time.UTC, stubReports{}, Sinks{}, nil)
	require.NoError(t, s.Start())
	s.Stop()
}

type failingArchive struct{}

func (failingArchive) SaveDailyReport(context.Context, models.DailyReport) error {
	return errors.New("mongo down")
}

// slowSheet finishes its append only if ctx is still live after a short delay.
type slowSheet struct {
	done   chan struct{}
	ctxErr error
	rows   int
}

func (s *slowSheet) AppendRow(ctx context.Context, _ []interface{}) error {
	defer close(s.done)
	select {
	case <-ctx.Done():
		s.ctxErr = ctx.Err()
		return ctx.Err()
	case <-time.After(50 * time.Millisecond):
		s.rows++
		return nil
	}
}

func TestRunOnce_ArchiveFailureDoesNotCancelExport(t *testing.T) {
	sheet := &slowSheet{done: make(chan struct{})}
	s := NewScheduler("0 20 * * *", time.UTC, stubReports{report: sampleReport()},
		Sinks{Archive: failingArchive{}, Sheet: sheet}, nil)

	err := s.RunOnce(context.Background())
	<-sheet.done

	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo down")
	assert.NoError(t, sheet.ctxErr)
	assert.Equal(t, 1, sheet.rows)
}

func TestRunOnce_BothSinkErrorsReported(t *testing.T) {
	rec := &recorder{saveErr: errors.New("mongo down")}
	s := NewScheduler("0 20 * * *", time.UTC, stubReports{report: sampleReport()},
		Sinks{Archive: rec, Sheet: erroringSheet{}}, nil)

	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo down")
	assert.Contains(t, err.Error(), "quota exceeded")
}

type erroringSheet struct{}

func (erroringSheet) AppendRow(context.Context, []interface{}) error {
	return errors.New("quota exceeded")
}
