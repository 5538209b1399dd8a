package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowAccessors(t *testing.T) {
	ts := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	r := Row{
		"id":        int32(7),
		"name":      "Kite Camp",
		"bytes":     []byte("raw"),
		"price":     float32(99.9),
		"price_txt": "120.5",
		"empty":     nil,
		"start":     ts,
		"start_txt": "2024-06-01",
		"created":   "2024-06-01 10:30:00",
	}

	assert.Equal(t, int64(7), r.Int64("id"))
	assert.Equal(t, "Kite Camp", r.String("name"))
	assert.Equal(t, "raw", r.String("bytes"))
	assert.Equal(t, 99.9, r.Float64("price"))
	assert.Equal(t, 120.5, r.Float64("price_txt"))

	assert.Nil(t, r.NullString("empty"))
	assert.Nil(t, r.NullInt64("empty"))
	assert.Nil(t, r.NullFloat64("missing"))
	assert.Equal(t, "", r.String("missing"))

	d := r.Date("start")
	require.NotNil(t, d)
	assert.Equal(t, "2024-06-01", *d)
	d = r.Date("start_txt")
	require.NotNil(t, d)
	assert.Equal(t, "2024-06-01", *d)

	created := r.Time("created")
	require.NotNil(t, created)
	assert.True(t, created.Equal(ts))
	assert.Nil(t, r.Time("name"))
}

func TestRowNonNumeric(t *testing.T) {
	r := Row{"n": "abc"}
	assert.Nil(t, r.NullInt64("n"))
	assert.Nil(t, r.NullFloat64("n"))
}
