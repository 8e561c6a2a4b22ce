package service

import (
	"math/rand"
	"testing"

	spaModel "sekolahku_backend/internals/features/school/attendance/student_attendance/model"

	"github.com/stretchr/testify/assert"
)

func TestPickDummyStatusExtremes(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		assert.Equal(t, spaModel.AttendancePresent, PickDummyStatus(r, 100))
	}

	r = rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		assert.NotEqual(t, spaModel.AttendancePresent, PickDummyStatus(r, 0))
	}
}

func TestPickDummyStatusDistribution(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	const n = 20000
	counts := map[spaModel.AttendanceStatus]int{}
	for i := 0; i < n; i++ {
		counts[PickDummyStatus(r, 90)]++
	}

	present := float64(counts[spaModel.AttendancePresent]) / n * 100
	assert.InDelta(t, 90, present, 2.0)

	// sisa 10% terbagi rata, masing-masing ±3.33%
	for _, st := range []spaModel.AttendanceStatus{
		spaModel.AttendanceLate, spaModel.AttendanceAbsent, spaModel.AttendanceExcused,
	} {
		pct := float64(counts[st]) / n * 100
		assert.InDelta(t, 10.0/3, pct, 1.5, string(st))
	}

	// status di luar empat itu tidak pernah keluar
	assert.Zero(t, counts[spaModel.AttendanceMedical])
	assert.Zero(t, counts[spaModel.AttendanceSuspended])
	assert.Zero(t, counts[spaModel.AttendanceActivity])
}
