package controller

import (
	"testing"
	"time"

	sessDTO "sekolahku_backend/internals/features/school/attendance/sessions/dto"
	sessModel "sekolahku_backend/internals/features/school/attendance/sessions/model"
	spaModel "sekolahku_backend/internals/features/school/attendance/student_attendance/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestBuildMarkingRows(t *testing.T) {
	branchID := uuid.New()
	teacherID := uuid.New()
	sess := &sessModel.AttendanceSessionModel{AttendanceSessionID: uuid.New()}
	now := time.Now()

	items := []sessDTO.MarkingItem{
		{StudentID: uuid.New(), Status: spaModel.AttendancePresent},
		{StudentID: uuid.New(), Status: spaModel.AttendanceLate, MinutesLate: intPtr(12)},
		// minutes_late ikut terkirim padahal bukan telat — harus dibuang
		{StudentID: uuid.New(), Status: spaModel.AttendanceAbsent, MinutesLate: intPtr(12)},
	}

	rows := buildMarkingRows(branchID, sess, teacherID, items, now)
	require.Len(t, rows, 3)

	for i, row := range rows {
		assert.Equal(t, branchID, row.StudentPeriodAttendanceBranchID, i)
		assert.Equal(t, sess.AttendanceSessionID, row.StudentPeriodAttendanceSessionID, i)
		require.NotNil(t, row.StudentPeriodAttendanceMarkedAt, i)
		assert.Equal(t, now, *row.StudentPeriodAttendanceMarkedAt, i)
		require.NotNil(t, row.StudentPeriodAttendanceMarkedByTeacherID, i)
		assert.Equal(t, teacherID, *row.StudentPeriodAttendanceMarkedByTeacherID, i)
	}

	assert.Nil(t, rows[0].StudentPeriodAttendanceMinutesLate)
	require.NotNil(t, rows[1].StudentPeriodAttendanceMinutesLate)
	assert.Equal(t, 12, *rows[1].StudentPeriodAttendanceMinutesLate)
	assert.Nil(t, rows[2].StudentPeriodAttendanceMinutesLate)
}
