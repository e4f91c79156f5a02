package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// floatingLayouts carry no zone offset; they are wall-clock times of the
// dashboard's location, not of the host.
var floatingLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02",
}

// ShipmentRecord is one international transport ("carga") row served by
// /api/TransInternacional. Records are read-only snapshots.
type ShipmentRecord struct {
	ID        string       `json:"id"`
	Status    *int         `json:"new_preestado2"`
	ETA       OptionalTime `json:"new_eta"`
	Executive Code         `json:"new_ejecutivocomercial"`
	Client    Code         `json:"_customerid_value"`
	POL       Code         `json:"new_pol"`
	POE       Code         `json:"new_poe"`
	Equipment Code         `json:"new_equipo"`
	Quantity  Code         `json:"new_cantequipo"`
	Comment   string       `json:"new_comentario,omitempty"`
	Document  string       `json:"new_documento,omitempty"`
}

// StatusCode returns the preestado as a categorical key.
func (r ShipmentRecord) StatusCode() (string, bool) {
	if r.Status == nil {
		return "", false
	}
	return strconv.Itoa(*r.Status), true
}

// OptionalTime decodes nullable timestamps. Unparseable values are treated as
// absent rather than rejected.
type OptionalTime struct {
	Time  time.Time
	Valid bool
	// Floating is set when the source had no zone offset. Time then holds the
	// wall clock in time.Local until In pins it to a location.
	Floating bool
}

// At builds a present OptionalTime.
func At(t time.Time) OptionalTime {
	return OptionalTime{Time: t, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptionalTime) UnmarshalJSON(b []byte) error {
	*o = OptionalTime{}

	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		*o = OptionalTime{Time: t, Valid: true}
		return nil
	}
	for _, layout := range floatingLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			*o = OptionalTime{Time: t, Valid: true, Floating: true}
			return nil
		}
	}
	return nil
}

// In reads a floating wall-clock time as a time in loc. Times that carried an
// offset are returned unchanged.
func (o OptionalTime) In(loc *time.Location) OptionalTime {
	if !o.Valid || !o.Floating || loc == nil {
		return o
	}
	t := o.Time
	return OptionalTime{
		Time:  time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc),
		Valid: true,
	}
}

// MarshalJSON implements json.Marshaler.
func (o OptionalTime) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Time.Format(time.RFC3339))
}

// Code is a categorical value the API sends either as a JSON number or a string.
type Code string

// UnmarshalJSON implements json.Unmarshaler.
func (c *Code) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*c = ""
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Code(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*c = Code(n.String())
	return nil
}

// Key returns the code and whether it is present.
func (c Code) Key() (string, bool) {
	return string(c), c != ""
}
