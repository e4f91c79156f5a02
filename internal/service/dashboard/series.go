package dashboard

import (
	"sort"

	"github.com/MauLang18/Cotizacion-CF/internal/domain/models"
	"github.com/MauLang18/Cotizacion-CF/internal/lookup"
)

// Groups holds the raw frequency tables behind each chart.
type Groups struct {
	Executive models.FrequencyTable
	Client    models.FrequencyTable
	Status    models.FrequencyTable
	POL       models.FrequencyTable
	POE       models.FrequencyTable
}

// GroupAll builds every chart's frequency table.
func GroupAll(records []models.ShipmentRecord) Groups {
	return Groups{
		Executive: GroupBy(records, ByExecutive),
		Client:    GroupBy(records, ByClient),
		Status:    GroupBy(records, ByStatus),
		POL:       GroupBy(records, ByPOL),
		POE:       GroupBy(records, ByPOE),
	}
}

// Resolver maps a code to its display label; "" means unknown.
type Resolver interface {
	Resolve(table, code string) string
}

// BuildCharts labels each frequency table. Unprefixed codes that resolve to ""
// are left out of the chart; port series always carry their "POE: "/"POL: "
// label, so an unknown port still shows up with the bare prefix.
func BuildCharts(g Groups, r Resolver) models.Charts {
	return models.Charts{
		Executive: series(g.Executive, tableLabel(r, lookup.Ejecutivo, "")),
		Client:    series(g.Client, func(code string) string { return code }),
		Status:    series(g.Status, tableLabel(r, lookup.Status, "")),
		POL:       series(g.POL, tableLabel(r, lookup.POL, "POL: ")),
		POE:       series(g.POE, tableLabel(r, lookup.POE, "POE: ")),
	}
}

func tableLabel(r Resolver, table, prefix string) func(string) string {
	return func(code string) string {
		return prefix + r.Resolve(table, code)
	}
}

// series sorts by descending value, then label, so chart colours stay stable
// between refreshes.
func series(table models.FrequencyTable, label func(string) string) []models.SeriesPoint {
	out := make([]models.SeriesPoint, 0, len(table))
	for code, count := range table {
		l := label(code)
		if l == "" {
			continue
		}
		out = append(out, models.SeriesPoint{Label: l, Value: count})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Label < out[j].Label
	})
	return out
}
