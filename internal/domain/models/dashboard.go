package models

import "time"

// Counts holds the four KPI cards of the dashboard.
type Counts struct {
	Today int `bson:"today" json:"today"`
	Week  int `bson:"week" json:"week"`
	Month int `bson:"month" json:"month"`
	Total int `bson:"total" json:"total"`
}

// FrequencyTable maps a category key to its occurrence count.
type FrequencyTable map[string]int

// Sum adds up every count in the table.
func (f FrequencyTable) Sum() int {
	total := 0
	for _, v := range f {
		total += v
	}
	return total
}

// SeriesPoint is one labelled value ready for a chart.
type SeriesPoint struct {
	Label string `bson:"label" json:"label"`
	Value int    `bson:"value" json:"value"`
}

// Charts groups the labelled series shown under the KPI cards.
type Charts struct {
	Executive []SeriesPoint `bson:"executive" json:"executive"`
	Client    []SeriesPoint `bson:"client" json:"client"`
	Status    []SeriesPoint `bson:"status" json:"status"`
	POL       []SeriesPoint `bson:"pol" json:"pol"`
	POE       []SeriesPoint `bson:"poe" json:"poe"`
}

// Snapshot is one computed dashboard state.
type Snapshot struct {
	Generation uint64    `bson:"generation" json:"generation"`
	FetchedAt  time.Time `bson:"fetched_at" json:"fetched_at"`
	Counts     Counts    `bson:"counts" json:"counts"`
	Charts     Charts    `bson:"charts" json:"charts"`
}
