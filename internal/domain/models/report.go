package models

import "time"

// DailyReport is the dashboard snapshot archived once per day.
type DailyReport struct {
	Date      time.Time `bson:"date" json:"date"`
	Snapshot  Snapshot  `bson:"snapshot" json:"snapshot"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
