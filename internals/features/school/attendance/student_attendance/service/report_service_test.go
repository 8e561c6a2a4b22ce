package service

import (
	"testing"

	dto "sekolahku_backend/internals/features/school/attendance/student_attendance/dto"
	model "sekolahku_backend/internals/features/school/attendance/student_attendance/model"

	"github.com/stretchr/testify/assert"
)

func TestAddStatus(t *testing.T) {
	var c dto.StatusCounts
	AddStatus(&c, model.AttendancePresent, 3)
	AddStatus(&c, model.AttendanceLate, 1)
	AddStatus(&c, model.AttendanceAbsent, 2)
	AddStatus(&c, model.AttendanceExcused, 1)

	assert.Equal(t, 3, c.Present)
	assert.Equal(t, 1, c.Late)
	assert.Equal(t, 2, c.Absent)
	assert.Equal(t, 1, c.Excused)
	assert.Equal(t, 7, c.Total)

	// status tak dikenal tetap menambah total
	AddStatus(&c, model.AttendanceStatus("legacy"), 1)
	assert.Equal(t, 8, c.Total)
	assert.Equal(t, 3, c.Present)
}

func TestAttendanceRate(t *testing.T) {
	cases := []struct {
		name string
		c    dto.StatusCounts
		want float64
	}{
		{"kosong", dto.StatusCounts{}, 0.00},
		{"semua hadir", dto.StatusCounts{Present: 10, Total: 10}, 100.00},
		{"hadir plus telat", dto.StatusCounts{Present: 7, Late: 1, Absent: 2, Total: 10}, 80.00},
		{"pembulatan dua desimal", dto.StatusCounts{Present: 2, Absent: 1, Total: 3}, 66.67},
		{"sepertiga", dto.StatusCounts{Present: 1, Absent: 2, Total: 3}, 33.33},
		{"telat saja", dto.StatusCounts{Late: 5, Absent: 5, Total: 10}, 50.00},
		{"excused tidak dihitung hadir", dto.StatusCounts{Excused: 4, Total: 4}, 0.00},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, AttendanceRate(tc.c), 0.0001)
		})
	}
}

func TestRound2(t *testing.T) {
	assert.InDelta(t, 66.67, Round2(66.666666), 0.0001)
	assert.InDelta(t, 83.34, Round2(83.335), 0.0001)
	assert.InDelta(t, 0.0, Round2(0.0), 0.0001)
}
