// file: internals/features/school/attendance/sessions/controller/attendance_session_actions_controller.go
package controller

import (
	"time"

	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"

	sessDTO "sekolahku_backend/internals/features/school/attendance/sessions/dto"
	sessModel "sekolahku_backend/internals/features/school/attendance/sessions/model"
	sessService "sekolahku_backend/internals/features/school/attendance/sessions/service"
	spaModel "sekolahku_backend/internals/features/school/attendance/student_attendance/model"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

/* ===============================
   MARK (bulk & single)
=============================== */

// kolom yang ikut berubah saat upsert marking (re-mark = update, bukan insert baru)
var markingAssignCols = []string{
	"student_period_attendance_status",
	"student_period_attendance_minutes_late",
	"student_period_attendance_reason",
	"student_period_attendance_notes",
	"student_period_attendance_marked_at",
	"student_period_attendance_marked_by_teacher_id",
	"student_period_attendance_updated_at",
}

func buildMarkingRows(
	branchID uuid.UUID,
	sess *sessModel.AttendanceSessionModel,
	teacherID uuid.UUID,
	items []sessDTO.MarkingItem,
	now time.Time,
) []spaModel.StudentPeriodAttendanceModel {
	rows := make([]spaModel.StudentPeriodAttendanceModel, 0, len(items))
	for _, it := range items {
		markedAt := now
		tid := teacherID
		row := spaModel.StudentPeriodAttendanceModel{
			StudentPeriodAttendanceBranchID:          branchID,
			StudentPeriodAttendanceSessionID:         sess.AttendanceSessionID,
			StudentPeriodAttendanceStudentID:         it.StudentID,
			StudentPeriodAttendanceStatus:            it.Status,
			StudentPeriodAttendanceReason:            it.Reason,
			StudentPeriodAttendanceNotes:             it.Notes,
			StudentPeriodAttendanceMarkedAt:          &markedAt,
			StudentPeriodAttendanceMarkedByTeacherID: &tid,
		}
		if it.Status == spaModel.AttendanceLate {
			row.StudentPeriodAttendanceMinutesLate = it.MinutesLate
		}
		rows = append(rows, row)
	}
	return rows
}

// applyMarkings: transaksi tunggal — flip scheduled→in_progress (stamp
// starts_at kalau belum ada), lalu upsert semua baris. Sebagian gagal =
// semua batal.
func (ctrl *AttendanceSessionController) applyMarkings(
	sess *sessModel.AttendanceSessionModel,
	rows []spaModel.StudentPeriodAttendanceModel,
) error {
	now := time.Now()
	return ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if sess.AttendanceSessionStatus == sessModel.SessionStatusScheduled {
			patch := map[string]interface{}{
				"attendance_session_status":     sessModel.SessionStatusInProgress,
				"attendance_session_updated_at": now,
			}
			if sess.AttendanceSessionStartsAt == nil {
				patch["attendance_session_starts_at"] = now
			}
			if err := tx.Model(&sessModel.AttendanceSessionModel{}).
				Where("attendance_session_id = ?", sess.AttendanceSessionID).
				Updates(patch).Error; err != nil {
				return err
			}
			sess.AttendanceSessionStatus = sessModel.SessionStatusInProgress
			if sess.AttendanceSessionStartsAt == nil {
				sess.AttendanceSessionStartsAt = &now
			}
		}

		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "student_period_attendance_session_id"},
				{Name: "student_period_attendance_student_id"},
			},
			DoUpdates: clause.AssignmentColumns(markingAssignCols),
		}).CreateInBatches(rows, 200).Error
	})
}

// POST /attendance/sessions/:id/mark
func (ctrl *AttendanceSessionController) BulkMark(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req sessDTO.BulkMarkRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	// identitas penanda wajib ada SEBELUM tulis apapun
	var teacherID uuid.UUID
	if req.TeacherID != nil {
		teacherID = *req.TeacherID
	} else if id, er := helperAuth.GetTeacherIDFromToken(c); er == nil {
		teacherID = id
	} else {
		return fiber.NewError(fiber.StatusBadRequest, "teacher_id wajib diisi untuk menandai kehadiran")
	}

	sess, err := ctrl.findSessionScoped(branchID, sessionID)
	if err != nil {
		return err
	}
	if sess.IsLocked() {
		return fiber.NewError(fiber.StatusConflict, "Sesi sudah dikunci — buka kembali sesi untuk koreksi")
	}

	rows := buildMarkingRows(branchID, sess, teacherID, req.Markings, time.Now())
	if err := ctrl.applyMarkings(sess, rows); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan kehadiran")
	}

	return helper.JsonOK(c, "Kehadiran berhasil disimpan", fiber.Map{
		"session": sessDTO.FromAttendanceSessionModel(*sess),
		"marked":  len(rows),
	})
}

// PATCH /attendance/sessions/:id/students/:student_id
func (ctrl *AttendanceSessionController) MarkSingleStudent(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "student_id tidak valid")
	}

	var req sessDTO.MarkSingleStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var teacherID uuid.UUID
	if req.TeacherID != nil {
		teacherID = *req.TeacherID
	} else if id, er := helperAuth.GetTeacherIDFromToken(c); er == nil {
		teacherID = id
	} else {
		return fiber.NewError(fiber.StatusBadRequest, "teacher_id wajib diisi untuk menandai kehadiran")
	}

	sess, err := ctrl.findSessionScoped(branchID, sessionID)
	if err != nil {
		return err
	}
	if sess.IsLocked() {
		return fiber.NewError(fiber.StatusConflict, "Sesi sudah dikunci — buka kembali sesi untuk koreksi")
	}

	items := []sessDTO.MarkingItem{{
		StudentID:   studentID,
		Status:      req.Status,
		MinutesLate: req.MinutesLate,
		Reason:      req.Reason,
		Notes:       req.Notes,
	}}
	rows := buildMarkingRows(branchID, sess, teacherID, items, time.Now())
	if err := ctrl.applyMarkings(sess, rows); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan kehadiran")
	}

	return helper.JsonUpdated(c, "Kehadiran siswa berhasil diperbarui", fiber.Map{
		"session_id": sess.AttendanceSessionID,
		"student_id": studentID,
		"status":     req.Status,
	})
}

/* ===============================
   BULK PRESENT / ABSENT
=============================== */

func (ctrl *AttendanceSessionController) bulkMarkAll(c *fiber.Ctx, status spaModel.AttendanceStatus, msg string) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	teacherID, err := helperAuth.GetTeacherIDFromToken(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "teacher_id wajib diisi untuk menandai kehadiran")
	}

	sess, err := ctrl.findSessionScoped(branchID, sessionID)
	if err != nil {
		return err
	}
	if sess.IsLocked() {
		return fiber.NewError(fiber.StatusConflict, "Sesi sudah dikunci — buka kembali sesi untuk koreksi")
	}

	// seluruh roster aktif section ini
	var studentIDs []uuid.UUID
	if err := ctrl.DB.Raw(`
SELECT css.class_section_student_student_id
FROM class_section_students css
JOIN students st
  ON st.student_id = css.class_section_student_student_id
 AND st.student_deleted_at IS NULL
WHERE css.class_section_student_section_id = ?
  AND css.class_section_student_is_active = TRUE`,
		sess.AttendanceSessionSectionID).Scan(&studentIDs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil roster")
	}
	if len(studentIDs) == 0 {
		return helper.JsonOK(c, "Roster kosong — tidak ada yang ditandai", fiber.Map{"marked": 0})
	}

	items := make([]sessDTO.MarkingItem, 0, len(studentIDs))
	for _, sid := range studentIDs {
		items = append(items, sessDTO.MarkingItem{StudentID: sid, Status: status})
	}
	rows := buildMarkingRows(branchID, sess, teacherID, items, time.Now())
	if err := ctrl.applyMarkings(sess, rows); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan kehadiran")
	}

	return helper.JsonOK(c, msg, fiber.Map{"marked": len(rows)})
}

// POST /attendance/sessions/:id/bulk-present
func (ctrl *AttendanceSessionController) BulkPresent(c *fiber.Ctx) error {
	return ctrl.bulkMarkAll(c, spaModel.AttendancePresent, "Semua siswa ditandai hadir")
}

// POST /attendance/sessions/:id/bulk-absent
func (ctrl *AttendanceSessionController) BulkAbsent(c *fiber.Ctx) error {
	return ctrl.bulkMarkAll(c, spaModel.AttendanceAbsent, "Semua siswa ditandai tidak hadir")
}

/* ===============================
   COMPLETE & REOPEN
=============================== */

// POST /attendance/sessions/:id/complete
// Back-fill absent untuk siswa yang belum ditandai, lalu kunci sesi.
func (ctrl *AttendanceSessionController) CompleteSession(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	sess, err := ctrl.findSessionScoped(branchID, sessionID)
	if err != nil {
		return err
	}
	if sess.AttendanceSessionStatus == sessModel.SessionStatusCompleted {
		return fiber.NewError(fiber.StatusConflict, "Sesi sudah selesai")
	}

	var backfilled int
	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		n, er := sessService.CompleteSessionTx(tx, branchID, sess)
		backfilled = n
		return er
	}); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyelesaikan sesi")
	}

	return helper.JsonOK(c, "Sesi berhasil diselesaikan", fiber.Map{
		"session":    sessDTO.FromAttendanceSessionModel(*sess),
		"backfilled": backfilled,
	})
}

// POST /attendance/sessions/:id/reopen
// Koreksi setelah selesai harus lewat sini dulu — tulis ke sesi terkunci
// selalu ditolak 409.
func (ctrl *AttendanceSessionController) ReopenSession(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	sess, err := ctrl.findSessionScoped(branchID, sessionID)
	if err != nil {
		return err
	}
	if !sess.IsLocked() {
		return fiber.NewError(fiber.StatusConflict, "Sesi belum dikunci")
	}

	now := time.Now()
	if err := ctrl.DB.Model(&sessModel.AttendanceSessionModel{}).
		Where("attendance_session_id = ?", sess.AttendanceSessionID).
		Updates(map[string]interface{}{
			"attendance_session_status":     sessModel.SessionStatusInProgress,
			"attendance_session_locked_at":  nil,
			"attendance_session_updated_at": now,
		}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuka kembali sesi")
	}

	sess.AttendanceSessionStatus = sessModel.SessionStatusInProgress
	sess.AttendanceSessionLockedAt = nil
	return helper.JsonOK(c, "Sesi dibuka kembali", sessDTO.FromAttendanceSessionModel(*sess))
}

/* ===============================
   GENERATE (admin)
=============================== */

// POST /attendance/sessions/generate-from-timetable
func (ctrl *AttendanceSessionController) GenerateFromTimetable(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	var req sessDTO.GenerateFromTimetableRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	gen := &sessService.Generator{DB: ctrl.DB}
	res, err := gen.GenerateForDate(c.UserContext(), branchID, date, nil)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal generate sesi dari timetable")
	}

	msg := "Sesi berhasil digenerate"
	if res.Generated == 0 && res.Skipped == 0 {
		msg = "Tidak ada period timetable aktif untuk tanggal tersebut"
	} else if res.Generated == 0 {
		msg = "Semua sesi untuk tanggal tersebut sudah ada"
	}

	return helper.JsonOK(c, msg, sessDTO.GenerateFromTimetableResponse{
		Date:      req.Date,
		Generated: res.Generated,
		Skipped:   res.Skipped,
		Message:   msg,
	})
}

// POST /attendance/sessions/:id/generate-dummy-data
// Isi kehadiran acak untuk sesi (seeding demo), lalu tutup sesinya.
func (ctrl *AttendanceSessionController) GenerateDummyData(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req sessDTO.GenerateDummyDataRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	sess, err := ctrl.findSessionScoped(branchID, sessionID)
	if err != nil {
		return err
	}
	if sess.IsLocked() {
		return fiber.NewError(fiber.StatusConflict, "Sesi sudah dikunci")
	}

	res, err := sessService.GenerateDummyData(ctrl.DB, branchID, sess, req.PresentPercentage)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal generate data dummy")
	}

	return helper.JsonOK(c, "Data dummy berhasil digenerate", fiber.Map{
		"session":    sessDTO.FromAttendanceSessionModel(*sess),
		"marked":     res.Marked,
		"backfilled": res.Backfilled,
	})
}
