package dashboard

import (
	"time"

	"github.com/MauLang18/Cotizacion-CF/internal/domain/models"
)

// StatusSet is a set of preestado codes.
type StatusSet map[int]struct{}

// NewStatusSet builds a StatusSet from a list of codes.
func NewStatusSet(codes ...int) StatusSet {
	set := make(StatusSet, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}

// Contains reports whether code is in the set.
func (s StatusSet) Contains(code int) bool {
	_, ok := s[code]
	return ok
}

// FilterActive keeps the records whose ETA is absent or not before now and
// whose status is not excluded. A record without status is never excluded on
// status grounds.
func FilterActive(records []models.ShipmentRecord, now time.Time, excluded StatusSet) []models.ShipmentRecord {
	out := make([]models.ShipmentRecord, 0, len(records))
	for _, r := range records {
		if r.ETA.Valid && r.ETA.Time.Before(now) {
			continue
		}
		if r.Status != nil && excluded.Contains(*r.Status) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Window is an inclusive time range.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within [Start, End].
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Windows are the calendar ranges around a reference instant.
type Windows struct {
	Today Window
	Week  Window
	Month Window
}

// CalendarWindows computes today, this week and this month around now in loc.
// Weeks begin on weekStart.
func CalendarWindows(now time.Time, loc *time.Location, weekStart time.Weekday) Windows {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	offset := (int(day.Weekday()) - int(weekStart) + 7) % 7
	week := day.AddDate(0, 0, -offset)
	month := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)

	return Windows{
		Today: Window{Start: day, End: endBefore(day.AddDate(0, 0, 1))},
		Week:  Window{Start: week, End: endBefore(week.AddDate(0, 0, 7))},
		Month: Window{Start: month, End: endBefore(month.AddDate(0, 1, 0))},
	}
}

func endBefore(next time.Time) time.Time {
	return next.Add(-time.Nanosecond)
}

// CountBuckets counts records per window. Records without an ETA only count
// toward Total.
func CountBuckets(records []models.ShipmentRecord, w Windows) models.Counts {
	counts := models.Counts{Total: len(records)}
	for _, r := range records {
		if !r.ETA.Valid {
			continue
		}
		if w.Today.Contains(r.ETA.Time) {
			counts.Today++
		}
		if w.Week.Contains(r.ETA.Time) {
			counts.Week++
		}
		if w.Month.Contains(r.ETA.Time) {
			counts.Month++
		}
	}
	return counts
}

// Selector extracts a categorical key from a record. ok=false skips the record.
type Selector func(models.ShipmentRecord) (key string, ok bool)

// Built-in selectors for the dashboard charts.
var (
	ByExecutive Selector = func(r models.ShipmentRecord) (string, bool) { return r.Executive.Key() }
	ByClient    Selector = func(r models.ShipmentRecord) (string, bool) { return r.Client.Key() }
	ByStatus    Selector = func(r models.ShipmentRecord) (string, bool) { return r.StatusCode() }
	ByPOL       Selector = func(r models.ShipmentRecord) (string, bool) { return r.POL.Key() }
	ByPOE       Selector = func(r models.ShipmentRecord) (string, bool) { return r.POE.Key() }
)

// GroupBy builds a frequency table over the keys produced by sel.
func GroupBy(records []models.ShipmentRecord, sel Selector) models.FrequencyTable {
	table := make(models.FrequencyTable)
	for _, r := range records {
		key, ok := sel(r)
		if !ok || key == "" {
			continue
		}
		table[key]++
	}
	return table
}
