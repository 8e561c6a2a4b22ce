package dto

import (
	"testing"
	"time"

	spaModel "sekolahku_backend/internals/features/school/attendance/student_attendance/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestBulkMarkRequestValidation(t *testing.T) {
	v := validator.New()

	valid := BulkMarkRequest{
		Markings: []MarkingItem{
			{StudentID: uuid.New(), Status: spaModel.AttendancePresent},
			{StudentID: uuid.New(), Status: spaModel.AttendanceLate, MinutesLate: intPtr(10)},
		},
	}
	assert.NoError(t, v.Struct(valid))

	empty := BulkMarkRequest{Markings: []MarkingItem{}}
	assert.Error(t, v.Struct(empty))

	badStatus := BulkMarkRequest{
		Markings: []MarkingItem{{StudentID: uuid.New(), Status: "hadir"}},
	}
	assert.Error(t, v.Struct(badStatus))

	negLate := BulkMarkRequest{
		Markings: []MarkingItem{{StudentID: uuid.New(), Status: spaModel.AttendanceLate, MinutesLate: intPtr(-5)}},
	}
	assert.Error(t, v.Struct(negLate))

	tooLate := BulkMarkRequest{
		Markings: []MarkingItem{{StudentID: uuid.New(), Status: spaModel.AttendanceLate, MinutesLate: intPtr(500)}},
	}
	assert.Error(t, v.Struct(tooLate))
}

func TestMarkingItemAcceptsWholeEnum(t *testing.T) {
	v := validator.New()
	for _, st := range []spaModel.AttendanceStatus{
		spaModel.AttendancePresent, spaModel.AttendanceAbsent, spaModel.AttendanceLate,
		spaModel.AttendanceExcused, spaModel.AttendanceMedical,
		spaModel.AttendanceSuspended, spaModel.AttendanceActivity,
	} {
		item := MarkingItem{StudentID: uuid.New(), Status: st}
		assert.NoError(t, v.Struct(item), string(st))
	}
}

func TestGenerateFromTimetableRequestValidation(t *testing.T) {
	v := validator.New()

	assert.NoError(t, v.Struct(GenerateFromTimetableRequest{Date: "2026-09-01"}))
	assert.Error(t, v.Struct(GenerateFromTimetableRequest{Date: "01-09-2026"}))
	assert.Error(t, v.Struct(GenerateFromTimetableRequest{Date: ""}))
}

func TestGenerateDummyDataRequestValidation(t *testing.T) {
	v := validator.New()

	assert.NoError(t, v.Struct(GenerateDummyDataRequest{PresentPercentage: 0}))
	assert.NoError(t, v.Struct(GenerateDummyDataRequest{PresentPercentage: 100}))
	assert.Error(t, v.Struct(GenerateDummyDataRequest{PresentPercentage: 101}))
	assert.Error(t, v.Struct(GenerateDummyDataRequest{PresentPercentage: -1}))
}

func TestCreateAttendanceSessionToModel(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	req := CreateAttendanceSessionRequest{
		AttendanceSessionBranchID:  uuid.New(),
		AttendanceSessionSectionID: uuid.New(),
		AttendanceSessionDate:      time.Date(2026, 9, 1, 10, 30, 0, 0, loc),
	}
	m := req.ToModel()

	// tanggal dinormalisasi ke UTC midnight
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), m.AttendanceSessionDate)
	assert.Equal(t, req.AttendanceSessionBranchID, m.AttendanceSessionBranchID)
	assert.Equal(t, "scheduled", string(m.AttendanceSessionStatus))
}
