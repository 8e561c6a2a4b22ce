// file: internals/features/school/attendance/sessions/service/generate_sessions_db_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sessModel "sekolahku_backend/internals/features/school/attendance/sessions/model"
)

func TestBuildSessionRows(t *testing.T) {
	branchID := uuid.New()
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC) // Senin
	loc := time.FixedZone("WIB", 7*3600)

	secName := "7A"
	subjName := "Matematika"
	teacherID := uuid.New()

	pA := periodRow{
		ID: uuid.New(), SectionID: uuid.New(),
		StartStr: "07:00:00", EndStr: "07:40:00", SectionName: &secName,
	}
	pB := periodRow{
		ID: uuid.New(), SectionID: pA.SectionID, TeacherID: &teacherID,
		StartStr: "07:40:00", EndStr: "08:20:00", SectionName: &secName, SubjectName: &subjName,
	}

	// pA sudah punya sesi → skip, hanya pB yang jadi baris baru
	rows, skipped := buildSessionRows(branchID, day, []periodRow{pA, pB}, map[uuid.UUID]bool{pA.ID: true}, loc)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, skipped)

	row := rows[0]
	assert.Equal(t, branchID, row.AttendanceSessionBranchID)
	require.NotNil(t, row.AttendanceSessionPeriodID)
	assert.Equal(t, pB.ID, *row.AttendanceSessionPeriodID)
	assert.Equal(t, pA.SectionID, row.AttendanceSessionSectionID)
	require.NotNil(t, row.AttendanceSessionAssignedTeacherID)
	assert.Equal(t, teacherID, *row.AttendanceSessionAssignedTeacherID)
	assert.Equal(t, sessModel.SessionStatusScheduled, row.AttendanceSessionStatus)
	assert.Equal(t, day, row.AttendanceSessionDate)

	// 07:40 WIB = 00:40 UTC
	require.NotNil(t, row.AttendanceSessionStartsAt)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 40, 0, 0, time.UTC), *row.AttendanceSessionStartsAt)
	require.NotNil(t, row.AttendanceSessionEndsAt)
	assert.Equal(t, time.Date(2026, 1, 5, 1, 20, 0, 0, time.UTC), *row.AttendanceSessionEndsAt)

	assert.Equal(t, "7A", row.AttendanceSessionContextSnapshot["section_name"])
	assert.Equal(t, "Matematika", row.AttendanceSessionContextSnapshot["subject_name"])
}

func TestBuildSessionRowsAllExisting(t *testing.T) {
	branchID := uuid.New()
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	loc := time.UTC

	pA := periodRow{ID: uuid.New(), SectionID: uuid.New(), StartStr: "07:00:00", EndStr: "07:40:00"}
	rows, skipped := buildSessionRows(branchID, day, []periodRow{pA}, map[uuid.UUID]bool{pA.ID: true}, loc)
	assert.Empty(t, rows)
	assert.Equal(t, 1, skipped)
}

func TestGenerateForDateSkipsExistingSessions(t *testing.T) {
	gdb, mock := newMockDB(t)
	g := &Generator{DB: gdb}

	branchID := uuid.New()
	date := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC) // Senin
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	periodA := uuid.New()
	periodB := uuid.New()
	sectionID := uuid.New()

	periodCols := []string{
		"period_id", "section_id", "subject_id", "teacher_id", "room",
		"start_str", "end_str", "section_name", "subject_name", "teacher_name",
	}
	// query period terikat branch + hari ISO + rentang berlaku
	mock.ExpectQuery(`FROM timetable_periods p .* WHERE p\.timetable_period_branch_id = `).
		WithArgs(branchID, 1, day, day).
		WillReturnRows(sqlmock.NewRows(periodCols).
			AddRow(periodA.String(), sectionID.String(), nil, nil, nil, "07:00:00", "07:40:00", "7A", nil, nil).
			AddRow(periodB.String(), sectionID.String(), nil, nil, nil, "07:40:00", "08:20:00", "7A", nil, nil))

	// period A sudah punya sesi di tanggal tsb
	mock.ExpectQuery(`SELECT "attendance_session_period_id" FROM "attendance_sessions" WHERE \(?attendance_session_branch_id = `).
		WillReturnRows(sqlmock.NewRows([]string{"attendance_session_period_id"}).
			AddRow(periodA.String()))

	// hanya period B yang di-insert, idempoten lewat ON CONFLICT DO NOTHING
	mock.ExpectQuery(`INSERT INTO "attendance_sessions" .* ON CONFLICT DO NOTHING RETURNING `).
		WillReturnRows(sqlmock.NewRows([]string{"attendance_session_id"}).
			AddRow(uuid.NewString()))

	res, err := g.GenerateForDate(context.Background(), branchID, date, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Generated)
	assert.Equal(t, 1, res.Skipped)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateForDateNoMatchingPeriods(t *testing.T) {
	gdb, mock := newMockDB(t)
	g := &Generator{DB: gdb}

	branchID := uuid.New()
	date := time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC) // Ahad

	mock.ExpectQuery(`FROM timetable_periods p `).
		WillReturnRows(sqlmock.NewRows([]string{"period_id"}))

	res, err := g.GenerateForDate(context.Background(), branchID, date, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Generated)
	assert.Equal(t, 0, res.Skipped)
	assert.NoError(t, mock.ExpectationsWereMet())
}
