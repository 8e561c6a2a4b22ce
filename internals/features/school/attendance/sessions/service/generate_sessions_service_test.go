package service

import (
	"testing"
	"time"

	ttModel "sekolahku_backend/internals/features/school/academics/timetable/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestISOWeekday(t *testing.T) {
	cases := []struct {
		date string
		want int
	}{
		{"2026-08-31", 1}, // Senin
		{"2026-09-01", 2},
		{"2026-09-04", 5},
		{"2026-09-05", 6},
		{"2026-09-06", 7}, // Ahad
	}
	for _, tc := range cases {
		d, err := time.Parse("2006-01-02", tc.date)
		require.NoError(t, err)
		assert.Equal(t, tc.want, ISOWeekday(d), tc.date)
	}
}

func TestParseTODString(t *testing.T) {
	got, err := ParseTODString("07:30:00")
	require.NoError(t, err)
	assert.Equal(t, 7, got.Hour())
	assert.Equal(t, 30, got.Minute())

	got, err = ParseTODString("13:05")
	require.NoError(t, err)
	assert.Equal(t, 13, got.Hour())
	assert.Equal(t, 5, got.Minute())
	assert.Equal(t, 0, got.Second())

	_, err = ParseTODString("bukan-jam")
	assert.Error(t, err)

	_, err = ParseTODString("25:00")
	assert.Error(t, err)
}

func TestCombineDateAndTOD(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	got, err := CombineDateAndTOD(day, "07:30:00", loc)
	require.NoError(t, err)

	// 07:30 WIB = 00:30 UTC
	assert.Equal(t, time.Date(2026, 9, 1, 0, 30, 0, 0, time.UTC), got)

	_, err = CombineDateAndTOD(day, "xx", loc)
	assert.Error(t, err)
}

func datePtr(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return &d
}

func TestPeriodCoversDate(t *testing.T) {
	from, _ := time.Parse("2006-01-02", "2026-07-01")

	openEnded := ttModel.TimetablePeriodModel{TimetablePeriodActiveFrom: from}
	bounded := ttModel.TimetablePeriodModel{
		TimetablePeriodActiveFrom: from,
		TimetablePeriodActiveTo:   datePtr(t, "2026-12-20"),
	}

	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}

	assert.False(t, PeriodCoversDate(openEnded, day("2026-06-30")))
	assert.True(t, PeriodCoversDate(openEnded, day("2026-07-01"))) // inklusif
	assert.True(t, PeriodCoversDate(openEnded, day("2027-01-01")))

	assert.True(t, PeriodCoversDate(bounded, day("2026-12-20"))) // inklusif
	assert.False(t, PeriodCoversDate(bounded, day("2026-12-21")))
}

func TestTODWithin(t *testing.T) {
	// [start, end)
	assert.True(t, TODWithin("07:30:00", "07:30:00", "08:15:00"))
	assert.True(t, TODWithin("08:14:59", "07:30:00", "08:15:00"))
	assert.False(t, TODWithin("08:15:00", "07:30:00", "08:15:00"))
	assert.False(t, TODWithin("07:29:59", "07:30:00", "08:15:00"))

	// format campur HH:MM dan HH:MM:SS
	assert.True(t, TODWithin("07:45", "07:30", "08:15:00"))

	// input rusak = tidak pernah cocok
	assert.False(t, TODWithin("zz", "07:30", "08:15"))
}
