// file: internals/features/school/attendance/sessions/service/complete_service.go
package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	sessModel "sekolahku_backend/internals/features/school/attendance/sessions/model"
)

// CompleteSessionTx: back-fill siswa yang belum ditandai sebagai absent,
// lalu tutup sesi (status=completed, ends_at + locked_at). Satu-satunya
// tempat "tidak hadir karena tidak ditandai" diubah jadi fakta eksplisit.
// Wajib dipanggil di dalam db.Transaction.
func CompleteSessionTx(tx *gorm.DB, branchID uuid.UUID, sess *sessModel.AttendanceSessionModel) (backfilled int, err error) {
	// 1) Insert absent untuk semua siswa aktif di section yang belum punya baris.
	//    Penanda pakai guru yang dijadwalkan, bukan aktor tertentu.
	res := tx.Exec(`
		INSERT INTO student_period_attendances (
			student_period_attendance_branch_id,
			student_period_attendance_session_id,
			student_period_attendance_student_id,
			student_period_attendance_status,
			student_period_attendance_marked_at,
			student_period_attendance_marked_by_teacher_id
		)
		SELECT ?, ?, css.class_section_student_student_id, 'absent', now(), ?
		FROM class_section_students css
		JOIN students st
		  ON st.student_id = css.class_section_student_student_id
		 AND st.student_deleted_at IS NULL
		WHERE css.class_section_student_section_id = ?
		  AND css.class_section_student_is_active = TRUE
		ON CONFLICT (student_period_attendance_session_id, student_period_attendance_student_id) DO NOTHING
	`, branchID, sess.AttendanceSessionID, sess.AttendanceSessionAssignedTeacherID, sess.AttendanceSessionSectionID)
	if res.Error != nil {
		return 0, res.Error
	}
	backfilled = int(res.RowsAffected)

	// 2) Tutup sesi
	now := time.Now()
	updates := map[string]any{
		"attendance_session_status":    sessModel.SessionStatusCompleted,
		"attendance_session_ends_at":   now,
		"attendance_session_locked_at": now,
		"attendance_session_updated_at": now,
	}
	if err := tx.Model(&sessModel.AttendanceSessionModel{}).
		Where("attendance_session_id = ?", sess.AttendanceSessionID).
		Updates(updates).Error; err != nil {
		return backfilled, err
	}

	sess.AttendanceSessionStatus = sessModel.SessionStatusCompleted
	sess.AttendanceSessionEndsAt = &now
	sess.AttendanceSessionLockedAt = &now
	return backfilled, nil
}
