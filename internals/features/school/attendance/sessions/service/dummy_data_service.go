// file: internals/features/school/attendance/sessions/service/dummy_data_service.go
package service

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	sessModel "sekolahku_backend/internals/features/school/attendance/sessions/model"
	spaModel "sekolahku_backend/internals/features/school/attendance/student_attendance/model"
)

/* =========================
   Dummy data (demo/testing, BUKAN alur produksi)
========================= */

type DummyDataResult struct {
	Marked     int
	Backfilled int
}

// PickDummyStatus: presentPct peluang hadir; sisanya dibagi rata
// late / absent / excused.
func PickDummyStatus(r *rand.Rand, presentPct float64) spaModel.AttendanceStatus {
	roll := r.Float64() * 100
	if roll < presentPct {
		return spaModel.AttendancePresent
	}
	rest := (100 - presentPct) / 3
	switch {
	case roll < presentPct+rest:
		return spaModel.AttendanceLate
	case roll < presentPct+2*rest:
		return spaModel.AttendanceAbsent
	default:
		return spaModel.AttendanceExcused
	}
}

// GenerateDummyData: isi status acak untuk semua siswa ter-enroll yang
// belum punya baris, lalu langsung tutup sesi. Satu transaksi.
func GenerateDummyData(db *gorm.DB, branchID uuid.UUID, sess *sessModel.AttendanceSessionModel, presentPct float64) (DummyDataResult, error) {
	var out DummyDataResult
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	err := db.Transaction(func(tx *gorm.DB) error {
		// siswa aktif yang belum punya baris attendance
		var studentIDs []uuid.UUID
		if err := tx.Raw(`
			SELECT css.class_section_student_student_id
			FROM class_section_students css
			WHERE css.class_section_student_section_id = ?
			  AND css.class_section_student_is_active = TRUE
			  AND NOT EXISTS (
				SELECT 1 FROM student_period_attendances spa
				WHERE spa.student_period_attendance_session_id = ?
				  AND spa.student_period_attendance_student_id = css.class_section_student_student_id
			  )
		`, sess.AttendanceSessionSectionID, sess.AttendanceSessionID).Scan(&studentIDs).Error; err != nil {
			return err
		}

		if len(studentIDs) > 0 {
			now := time.Now()
			rows := make([]spaModel.StudentPeriodAttendanceModel, 0, len(studentIDs))
			for _, sid := range studentIDs {
				st := PickDummyStatus(r, presentPct)
				row := spaModel.StudentPeriodAttendanceModel{
					StudentPeriodAttendanceBranchID:          branchID,
					StudentPeriodAttendanceSessionID:         sess.AttendanceSessionID,
					StudentPeriodAttendanceStudentID:         sid,
					StudentPeriodAttendanceStatus:            st,
					StudentPeriodAttendanceMarkedAt:          &now,
					StudentPeriodAttendanceMarkedByTeacherID: sess.AttendanceSessionAssignedTeacherID,
				}
				if st == spaModel.AttendanceLate {
					ml := 5 + r.Intn(26)
					row.StudentPeriodAttendanceMinutesLate = &ml
				}
				rows = append(rows, row)
			}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(rows, 500)
			if res.Error != nil {
				return res.Error
			}
			out.Marked = int(res.RowsAffected)
		}

		bf, err := CompleteSessionTx(tx, branchID, sess)
		if err != nil {
			return err
		}
		out.Backfilled = bf
		return nil
	})
	return out, err
}
