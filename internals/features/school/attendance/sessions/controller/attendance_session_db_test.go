// file: internals/features/school/attendance/sessions/controller/attendance_session_db_test.go
package controller

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	sessDTO "sekolahku_backend/internals/features/school/attendance/sessions/dto"
	sessModel "sekolahku_backend/internals/features/school/attendance/sessions/model"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

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

/* ===============================
   applyMarkings (transaksi tunggal)
=============================== */

func TestApplyMarkingsFlipsScheduledAndUpserts(t *testing.T) {
	gdb, mock := newMockDB(t)
	ctrl := NewAttendanceSessionController(gdb)

	branchID := uuid.New()
	teacherID := uuid.New()
	sess := &sessModel.AttendanceSessionModel{
		AttendanceSessionID:        uuid.New(),
		AttendanceSessionBranchID:  branchID,
		AttendanceSessionSectionID: uuid.New(),
		AttendanceSessionStatus:    sessModel.SessionStatusScheduled,
	}
	rows := buildMarkingRows(branchID, sess, teacherID, []sessDTO.MarkingItem{
		{StudentID: uuid.New(), Status: "present"},
		{StudentID: uuid.New(), Status: "absent"},
	}, time.Now())

	mock.ExpectBegin()
	// sesi scheduled → in_progress + stamp starts_at
	mock.ExpectExec(`UPDATE "attendance_sessions" SET "attendance_session_starts_at"=.*"attendance_session_status"=.* WHERE attendance_session_id = `).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// re-mark = update, kunci konflik (session_id, student_id)
	mock.ExpectQuery(`INSERT INTO "student_period_attendances" .* ON CONFLICT \("student_period_attendance_session_id","student_period_attendance_student_id"\) DO UPDATE SET "student_period_attendance_status"="excluded"\."student_period_attendance_status","student_period_attendance_minutes_late"="excluded"\."student_period_attendance_minutes_late"`).
		WillReturnRows(sqlmock.NewRows([]string{"student_period_attendance_id"}).
			AddRow(uuid.NewString()).
			AddRow(uuid.NewString()))
	mock.ExpectCommit()

	require.NoError(t, ctrl.applyMarkings(sess, rows))
	assert.Equal(t, sessModel.SessionStatusInProgress, sess.AttendanceSessionStatus)
	assert.NotNil(t, sess.AttendanceSessionStartsAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyMarkingsInProgressSkipsStatusFlip(t *testing.T) {
	gdb, mock := newMockDB(t)
	ctrl := NewAttendanceSessionController(gdb)

	branchID := uuid.New()
	startsAt := time.Now().Add(-10 * time.Minute)
	sess := &sessModel.AttendanceSessionModel{
		AttendanceSessionID:        uuid.New(),
		AttendanceSessionBranchID:  branchID,
		AttendanceSessionSectionID: uuid.New(),
		AttendanceSessionStatus:    sessModel.SessionStatusInProgress,
		AttendanceSessionStartsAt:  &startsAt,
	}
	rows := buildMarkingRows(branchID, sess, uuid.New(), []sessDTO.MarkingItem{
		{StudentID: uuid.New(), Status: "late", MinutesLate: intPtr(7)},
	}, time.Now())

	// tidak ada UPDATE sesi — langsung upsert baris marking
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "student_period_attendances" .* DO UPDATE SET `).
		WillReturnRows(sqlmock.NewRows([]string{"student_period_attendance_id"}).
			AddRow(uuid.NewString()))
	mock.ExpectCommit()

	require.NoError(t, ctrl.applyMarkings(sess, rows))
	assert.Equal(t, sessModel.SessionStatusInProgress, sess.AttendanceSessionStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/* ===============================
   Create: cek unik (period, date)
=============================== */

func newCreateApp(gdb *gorm.DB) *fiber.App {
	app := fiber.New()
	ctrl := NewAttendanceSessionController(gdb)
	app.Post("/attendance/sessions", ctrl.CreateAttendanceSession)
	return app
}

func createSessionBody(periodID uuid.UUID) string {
	return fmt.Sprintf(`{
		"attendance_session_section_id": %q,
		"attendance_session_period_id": %q,
		"attendance_session_date": "2026-01-05T00:00:00Z"
	}`, uuid.NewString(), periodID.String())
}

func TestCreateAttendanceSessionDuplicatePeriodDate(t *testing.T) {
	gdb, mock := newMockDB(t)
	app := newCreateApp(gdb)
	branchID := uuid.New()
	periodID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "attendance_sessions" WHERE .*attendance_session_period_id = `).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	req := httptest.NewRequest("POST", "/attendance/sessions", strings.NewReader(createSessionBody(periodID)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(helperAuth.HeaderBranchID, branchID.String())

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAttendanceSessionDuplicateCheckQueryError(t *testing.T) {
	gdb, mock := newMockDB(t)
	app := newCreateApp(gdb)
	branchID := uuid.New()
	periodID := uuid.New()

	// error query tidak boleh ditelan jadi "tidak duplikat"
	mock.ExpectQuery(`SELECT count\(\*\) FROM "attendance_sessions"`).
		WillReturnError(fmt.Errorf("connection reset"))

	req := httptest.NewRequest("POST", "/attendance/sessions", strings.NewReader(createSessionBody(periodID)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(helperAuth.HeaderBranchID, branchID.String())

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAttendanceSessionHappyPath(t *testing.T) {
	gdb, mock := newMockDB(t)
	app := newCreateApp(gdb)
	branchID := uuid.New()
	periodID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "attendance_sessions"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "attendance_sessions" .* RETURNING `).
		WillReturnRows(sqlmock.NewRows([]string{"attendance_session_id"}).
			AddRow(uuid.NewString()))

	req := httptest.NewRequest("POST", "/attendance/sessions", strings.NewReader(createSessionBody(periodID)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(helperAuth.HeaderBranchID, branchID.String())

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
