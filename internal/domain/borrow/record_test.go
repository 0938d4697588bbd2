package borrow

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var maturity = time.Date(2025, 9, 6, 12, 0, 0, 0, time.UTC)

func recordAt(raw Status) *Record {
	return &Record{RawStatus: raw, StartTime: maturity.Add(-30 * 24 * time.Hour).Unix(), EndTime: maturity.Unix()}
}

func TestDeriveStatus_NonActivePassesThrough(t *testing.T) {
	for _, raw := range []Status{StatusNone, StatusEnd, StatusOverdue, StatusLiquidation} {
		r := recordAt(raw)
		for _, now := range []time.Time{maturity.Add(-time.Hour), maturity, maturity.Add(24 * time.Hour)} {
			assert.Equal(t, raw, DeriveStatus(r, now), "raw=%s now=%s", raw, now)
		}
	}
}

func TestDeriveStatus_ActiveBeforeMaturity(t *testing.T) {
	r := recordAt(StatusActive)
	assert.Equal(t, StatusActive, DeriveStatus(r, maturity.Add(-time.Second)))
}

func TestDeriveStatus_ActiveAtAndAfterMaturity(t *testing.T) {
	r := recordAt(StatusActive)
	assert.Equal(t, StatusMatured, DeriveStatus(r, maturity))
	assert.Equal(t, StatusMatured, DeriveStatus(r, maturity.Add(3*time.Minute)))
	assert.Equal(t, StatusMatured, DeriveStatus(r, maturity.Add(5*time.Minute+59*time.Second)))
}

func TestIsRecordEnd(t *testing.T) {
	cases := map[Status]bool{
		StatusNone:        false,
		StatusActive:      false,
		StatusMatured:     false,
		StatusEnd:         true,
		StatusOverdue:     true,
		StatusLiquidation: true,
	}
	for s, want := range cases {
		assert.Equal(t, want, IsRecordEnd(s), s.String())
	}
}

func TestIsInLiquidation_Boundary(t *testing.T) {
	r := recordAt(StatusActive)

	assert.False(t, IsInLiquidation(r, maturity.Add(-time.Minute)))
	assert.False(t, IsInLiquidation(r, maturity.Add(3*time.Minute)))
	assert.False(t, IsInLiquidation(r, maturity.Add(6*time.Minute)), "exactly six minutes is still inside the window")
	assert.True(t, IsInLiquidation(r, maturity.Add(7*time.Minute)))
}

func TestElapsedMinutesTruncate(t *testing.T) {
	r := recordAt(StatusActive)

	assert.False(t, IsInLiquidation(r, maturity.Add(6*time.Minute+59*time.Second)))
	assert.True(t, IsInLiquidation(r, maturity.Add(7*time.Minute)))
	assert.Equal(t, "0/6", RemainingWindow(r, maturity.Add(6*time.Minute+30*time.Second)).String())
	assert.Equal(t, "6/6", RemainingWindow(r, maturity.Add(59*time.Second)).String())

	w := RemainingWindow(r, maturity.Add(-30*time.Second))
	assert.False(t, w.Grace)
	assert.Equal(t, int64(0), w.Minutes)

	w = RemainingWindow(recordAt(StatusNone), maturity.Add(30*time.Second))
	assert.False(t, w.Grace)
	assert.Equal(t, int64(0), w.Minutes)
	assert.Equal(t, "0", w.String())
}

func TestIsInLiquidation_ExclusiveWithRecordEnd(t *testing.T) {
	offsets := []time.Duration{-time.Hour, 0, 6 * time.Minute, 7 * time.Minute, 48 * time.Hour}
	for _, raw := range []Status{StatusNone, StatusActive, StatusEnd, StatusOverdue, StatusLiquidation} {
		r := recordAt(raw)
		for _, off := range offsets {
			now := maturity.Add(off)
			assert.False(t, r.IsRecordEnd(now) && r.IsInLiquidation(now), "raw=%s off=%s", raw, off)
		}
	}
	assert.False(t, IsInLiquidation(recordAt(StatusLiquidation), maturity.Add(time.Hour)))
}

func TestSevenMinutesPastMaturity(t *testing.T) {
	r := recordAt(StatusActive)
	now := maturity.Add(7 * time.Minute)

	assert.Equal(t, StatusMatured, r.Status(now))
	assert.True(t, r.IsInLiquidation(now))
}

func TestRemainingWindow(t *testing.T) {
	r := recordAt(StatusActive)

	w := RemainingWindow(r, maturity.Add(3*time.Minute))
	assert.True(t, w.Grace)
	assert.Equal(t, "3/6", w.String())

	w = RemainingWindow(r, maturity)
	assert.Equal(t, "6/6", w.String())

	w = RemainingWindow(r, maturity.Add(-90*time.Minute))
	assert.False(t, w.Grace)
	assert.Equal(t, int64(90), w.Minutes)

	w = RemainingWindow(recordAt(StatusEnd), maturity.Add(-90*time.Minute))
	assert.True(t, w.Ended)
	assert.Equal(t, "0", w.String())
}

func TestRemainingWindow_NotPromotedIsNegative(t *testing.T) {
	// A record the ledger never activated keeps its raw status after
	// maturity, so the countdown runs negative.
	r := recordAt(StatusNone)
	w := RemainingWindow(r, maturity.Add(10*time.Minute))
	assert.False(t, w.Grace)
	assert.Equal(t, int64(-10), w.Minutes)
}

func TestWindow_JSON(t *testing.T) {
	b, err := json.Marshal(Window{Grace: true, Minutes: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `"2/6"`, string(b))

	b, err = json.Marshal(Window{Minutes: 42})
	require.NoError(t, err)
	assert.JSONEq(t, `42`, string(b))

	b, err = json.Marshal(Window{Ended: true})
	require.NoError(t, err)
	assert.JSONEq(t, `0`, string(b))
}

func TestStatus_JSON(t *testing.T) {
	b, err := json.Marshal(StatusMatured)
	require.NoError(t, err)
	assert.JSONEq(t, `"matured"`, string(b))

	var s Status
	require.NoError(t, json.Unmarshal([]byte(`"overdue"`), &s))
	assert.Equal(t, StatusOverdue, s)
	assert.Error(t, json.Unmarshal([]byte(`"bogus"`), &s))
	assert.Equal(t, "unknown(9)", Status(9).String())
}

func TestStatus_UnknownCodeRoundTrips(t *testing.T) {
	b, err := json.Marshal(Status(7))
	require.NoError(t, err)
	assert.JSONEq(t, `"unknown(7)"`, string(b))

	var s Status
	require.NoError(t, json.Unmarshal(b, &s))
	assert.Equal(t, Status(7), s)

	assert.Error(t, json.Unmarshal([]byte(`"unknown(300)"`), &s))
	assert.Error(t, json.Unmarshal([]byte(`"unknown(7)x"`), &s))
}
