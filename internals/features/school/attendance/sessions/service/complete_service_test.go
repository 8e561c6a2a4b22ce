// file: internals/features/school/attendance/sessions/service/complete_service_test.go
package service

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	sessModel "sekolahku_backend/internals/features/school/attendance/sessions/model"
)

// newMockDB: gorm di atas sqlmock, matcher regex (substring) supaya
// assert bentuk SQL-nya tetap terbaca.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)
	return gdb, mock
}

func TestCompleteSessionTxBackfillsUnmarkedAsAbsent(t *testing.T) {
	gdb, mock := newMockDB(t)

	branchID := uuid.New()
	teacherID := uuid.New()
	sectionID := uuid.New()
	sess := &sessModel.AttendanceSessionModel{
		AttendanceSessionID:                uuid.New(),
		AttendanceSessionBranchID:          branchID,
		AttendanceSessionSectionID:         sectionID,
		AttendanceSessionAssignedTeacherID: &teacherID,
		AttendanceSessionStatus:            sessModel.SessionStatusInProgress,
	}

	// Back-fill hanya menyentuh siswa yang BELUM punya baris: insert-select
	// dengan kunci konflik (session_id, student_id) dan branch terikat.
	// Roster 5 siswa, 2 sudah ditandai → 3 baris absent baru.
	mock.ExpectExec(`INSERT INTO student_period_attendances .* SELECT .*, 'absent', now\(\), .* FROM class_section_students css JOIN students st .* ON CONFLICT \(student_period_attendance_session_id, student_period_attendance_student_id\) DO NOTHING`).
		WithArgs(branchID, sess.AttendanceSessionID, teacherID, sectionID).
		WillReturnResult(sqlmock.NewResult(0, 3))

	mock.ExpectExec(`UPDATE "attendance_sessions" SET .*"attendance_session_status"=.* WHERE attendance_session_id = `).
		WillReturnResult(sqlmock.NewResult(0, 1))

	backfilled, err := CompleteSessionTx(gdb, branchID, sess)
	require.NoError(t, err)
	assert.Equal(t, 3, backfilled)
	assert.Equal(t, sessModel.SessionStatusCompleted, sess.AttendanceSessionStatus)
	assert.NotNil(t, sess.AttendanceSessionEndsAt)
	assert.NotNil(t, sess.AttendanceSessionLockedAt)
	assert.True(t, sess.IsLocked())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteSessionTxNoUnmarkedStudents(t *testing.T) {
	gdb, mock := newMockDB(t)

	branchID := uuid.New()
	sess := &sessModel.AttendanceSessionModel{
		AttendanceSessionID:        uuid.New(),
		AttendanceSessionBranchID:  branchID,
		AttendanceSessionSectionID: uuid.New(),
		AttendanceSessionStatus:    sessModel.SessionStatusInProgress,
	}

	// semua siswa sudah ditandai → conflict di semua baris, 0 back-fill
	mock.ExpectExec(`INSERT INTO student_period_attendances .* ON CONFLICT \(student_period_attendance_session_id, student_period_attendance_student_id\) DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE "attendance_sessions" SET `).
		WillReturnResult(sqlmock.NewResult(0, 1))

	backfilled, err := CompleteSessionTx(gdb, branchID, sess)
	require.NoError(t, err)
	assert.Equal(t, 0, backfilled)
	assert.Equal(t, sessModel.SessionStatusCompleted, sess.AttendanceSessionStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}
