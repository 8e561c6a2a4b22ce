// file: internals/features/school/attendance/student_attendance/controller/update_patch_test.go
package controller

import (
	"testing"
	"time"

	spaDTO "sekolahku_backend/internals/features/school/attendance/student_attendance/dto"
	spaModel "sekolahku_backend/internals/features/school/attendance/student_attendance/model"

	"github.com/stretchr/testify/assert"
)

func statusPtr(s spaModel.AttendanceStatus) *spaModel.AttendanceStatus { return &s }
func intPtr(n int) *int                                               { return &n }

func TestBuildUpdatePatchMinutesLate(t *testing.T) {
	now := time.Now()

	// status late + menit → keduanya tersimpan
	patch := buildUpdatePatch(spaModel.AttendancePresent, spaDTO.UpdateStudentPeriodAttendanceRequest{
		StudentPeriodAttendanceStatus:      statusPtr(spaModel.AttendanceLate),
		StudentPeriodAttendanceMinutesLate: intPtr(12),
	}, now)
	assert.Equal(t, spaModel.AttendanceLate, patch["student_period_attendance_status"])
	assert.Equal(t, 12, patch["student_period_attendance_minutes_late"])

	// status bukan late tapi menit ikut dikirim → menit dibuang (di-null-kan)
	patch = buildUpdatePatch(spaModel.AttendanceLate, spaDTO.UpdateStudentPeriodAttendanceRequest{
		StudentPeriodAttendanceStatus:      statusPtr(spaModel.AttendancePresent),
		StudentPeriodAttendanceMinutesLate: intPtr(9),
	}, now)
	assert.Equal(t, spaModel.AttendancePresent, patch["student_period_attendance_status"])
	assert.Nil(t, patch["student_period_attendance_minutes_late"])
	_, ok := patch["student_period_attendance_minutes_late"]
	assert.True(t, ok, "kolom menit harus ikut di-update jadi NULL")

	// hanya menit, status tersimpan masih late → boleh
	patch = buildUpdatePatch(spaModel.AttendanceLate, spaDTO.UpdateStudentPeriodAttendanceRequest{
		StudentPeriodAttendanceMinutesLate: intPtr(3),
	}, now)
	assert.Equal(t, 3, patch["student_period_attendance_minutes_late"])

	// hanya menit, status tersimpan bukan late → menit dibuang
	patch = buildUpdatePatch(spaModel.AttendanceExcused, spaDTO.UpdateStudentPeriodAttendanceRequest{
		StudentPeriodAttendanceMinutesLate: intPtr(3),
	}, now)
	assert.Nil(t, patch["student_period_attendance_minutes_late"])
}

func TestBuildUpdatePatchPartialFields(t *testing.T) {
	now := time.Now()

	// request kosong → hanya updated_at, kolom menit tidak disentuh
	patch := buildUpdatePatch(spaModel.AttendancePresent, spaDTO.UpdateStudentPeriodAttendanceRequest{}, now)
	assert.Equal(t, now, patch["student_period_attendance_updated_at"])
	_, ok := patch["student_period_attendance_minutes_late"]
	assert.False(t, ok)
	_, ok = patch["student_period_attendance_status"]
	assert.False(t, ok)

	reason := "sakit"
	notes := "surat menyusul"
	patch = buildUpdatePatch(spaModel.AttendancePresent, spaDTO.UpdateStudentPeriodAttendanceRequest{
		StudentPeriodAttendanceReason: &reason,
		StudentPeriodAttendanceNotes:  &notes,
	}, now)
	assert.Equal(t, "sakit", patch["student_period_attendance_reason"])
	assert.Equal(t, "surat menyusul", patch["student_period_attendance_notes"])
}
