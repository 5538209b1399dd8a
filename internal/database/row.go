package database

import (
	"strconv"
	"strings"
	"time"
)

// Row is a single result row keyed by column name. Drivers disagree on the
// Go types they hand back (pgx yields int32 for INTEGER and float32 for REAL,
// SQLite may return DATE columns as text or time.Time), so callers read
// values through the typed accessors below.
type Row map[string]any

const dateLayout = "2006-01-02"

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	dateLayout,
}

// String returns the column as text; NULL and missing columns yield "".
func (r Row) String(col string) string {
	s := r.NullString(col)
	if s == nil {
		return ""
	}
	return *s
}

// NullString returns nil for NULL, otherwise the column rendered as text.
func (r Row) NullString(col string) *string {
	v, ok := r[col]
	if !ok || v == nil {
		return nil
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case []byte:
		s = string(t)
	case time.Time:
		s = t.Format(time.RFC3339)
	case int64:
		s = strconv.FormatInt(t, 10)
	case int32:
		s = strconv.FormatInt(int64(t), 10)
	case int:
		s = strconv.Itoa(t)
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(t), 'f', -1, 32)
	case bool:
		s = strconv.FormatBool(t)
	default:
		return nil
	}
	return &s
}

// Int64 returns the column as an integer; NULL yields 0.
func (r Row) Int64(col string) int64 {
	n := r.NullInt64(col)
	if n == nil {
		return 0
	}
	return *n
}

// NullInt64 returns nil for NULL or non-numeric values.
func (r Row) NullInt64(col string) *int64 {
	v, ok := r[col]
	if !ok || v == nil {
		return nil
	}
	var n int64
	switch t := v.(type) {
	case int64:
		n = t
	case int32:
		n = int64(t)
	case int16:
		n = int64(t)
	case int:
		n = int64(t)
	case float64:
		n = int64(t)
	case float32:
		n = int64(t)
	case []byte:
		p, err := strconv.ParseInt(strings.TrimSpace(string(t)), 10, 64)
		if err != nil {
			return nil
		}
		n = p
	case string:
		p, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return nil
		}
		n = p
	default:
		return nil
	}
	return &n
}

// Float64 returns the column as a float; NULL yields 0.
func (r Row) Float64(col string) float64 {
	f := r.NullFloat64(col)
	if f == nil {
		return 0
	}
	return *f
}

// NullFloat64 returns nil for NULL or non-numeric values. float32 values are
// widened through their shortest decimal form so 99.9 stays 99.9.
func (r Row) NullFloat64(col string) *float64 {
	v, ok := r[col]
	if !ok || v == nil {
		return nil
	}
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		p, err := strconv.ParseFloat(strconv.FormatFloat(float64(t), 'g', -1, 32), 64)
		if err != nil {
			return nil
		}
		f = p
	case int64:
		f = float64(t)
	case int32:
		f = float64(t)
	case int:
		f = float64(t)
	case []byte:
		p, err := strconv.ParseFloat(strings.TrimSpace(string(t)), 64)
		if err != nil {
			return nil
		}
		f = p
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil
		}
		f = p
	default:
		return nil
	}
	return &f
}

// Date returns a DATE column as YYYY-MM-DD. Text values that are not dates
// are returned unchanged.
func (r Row) Date(col string) *string {
	v, ok := r[col]
	if !ok || v == nil {
		return nil
	}
	if t, ok := v.(time.Time); ok {
		s := t.Format(dateLayout)
		return &s
	}
	return r.NullString(col)
}

// Time returns a timestamp column; unparseable or NULL values yield nil.
func (r Row) Time(col string) *time.Time {
	v, ok := r[col]
	if !ok || v == nil {
		return nil
	}
	switch t := v.(type) {
	case time.Time:
		return &t
	case int64:
		ts := time.Unix(t, 0).UTC()
		return &ts
	case []byte:
		return parseTime(string(t))
	case string:
		return parseTime(t)
	}
	return nil
}

func parseTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
