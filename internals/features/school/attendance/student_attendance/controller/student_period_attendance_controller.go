// file: internals/features/school/attendance/student_attendance/controller/student_period_attendance_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"

	sessModel "sekolahku_backend/internals/features/school/attendance/sessions/model"
	spaDTO "sekolahku_backend/internals/features/school/attendance/student_attendance/dto"
	spaModel "sekolahku_backend/internals/features/school/attendance/student_attendance/model"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudentPeriodAttendanceController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewStudentPeriodAttendanceController(db *gorm.DB) *StudentPeriodAttendanceController {
	return &StudentPeriodAttendanceController{DB: db, validate: validator.New()}
}

// guardSessionWritable: record hanya boleh ditulis kalau sesinya
// milik tenant yang sama dan belum dikunci.
func (ctrl *StudentPeriodAttendanceController) guardSessionWritable(branchID, sessionID uuid.UUID) error {
	var sess sessModel.AttendanceSessionModel
	if err := ctrl.DB.
		First(&sess, "attendance_session_id = ? AND attendance_session_branch_id = ?", sessionID, branchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Sesi tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil sesi")
	}
	if sess.IsLocked() {
		return fiber.NewError(fiber.StatusConflict, "Sesi sudah dikunci — buka kembali sesi untuk koreksi")
	}
	return nil
}

/* ===============================
   CREATE (upsert per session+student)
=============================== */

// POST /student-period-attendance
func (ctrl *StudentPeriodAttendanceController) Create(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	var req spaDTO.CreateStudentPeriodAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if err := ctrl.guardSessionWritable(branchID, req.StudentPeriodAttendanceSessionID); err != nil {
		return err
	}

	m := req.ToModel(branchID)
	// (session, student) unik — tulis ulang berarti update record yang sama
	if err := ctrl.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "student_period_attendance_session_id"},
			{Name: "student_period_attendance_student_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"student_period_attendance_status",
			"student_period_attendance_minutes_late",
			"student_period_attendance_reason",
			"student_period_attendance_notes",
			"student_period_attendance_marked_at",
			"student_period_attendance_marked_by_teacher_id",
			"student_period_attendance_updated_at",
		}),
	}).Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan record kehadiran")
	}

	return helper.JsonCreated(c, "Record kehadiran berhasil disimpan", spaDTO.FromStudentPeriodAttendanceModel(*m))
}

/* ===============================
   LIST (filtered, paginated)
=============================== */

// GET /student-period-attendance?student_id=&session_id=&section_id=&status=&date_from=&date_to=
func (ctrl *StudentPeriodAttendanceController) List(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 200)

	tx := ctrl.DB.Model(&spaModel.StudentPeriodAttendanceModel{}).
		Where("student_period_attendance_branch_id = ?", branchID)

	if raw := strings.TrimSpace(c.Query("student_id")); raw != "" {
		id, er := uuid.Parse(raw)
		if er != nil {
			return fiber.NewError(fiber.StatusBadRequest, "student_id tidak valid")
		}
		tx = tx.Where("student_period_attendance_student_id = ?", id)
	}
	if raw := strings.TrimSpace(c.Query("session_id")); raw != "" {
		id, er := uuid.Parse(raw)
		if er != nil {
			return fiber.NewError(fiber.StatusBadRequest, "session_id tidak valid")
		}
		tx = tx.Where("student_period_attendance_session_id = ?", id)
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		if !spaModel.ValidAttendanceStatus(spaModel.AttendanceStatus(raw)) {
			return fiber.NewError(fiber.StatusBadRequest, "status tidak valid")
		}
		tx = tx.Where("student_period_attendance_status = ?", raw)
	}
	if raw := strings.TrimSpace(c.Query("marked_by_teacher_id")); raw != "" {
		id, er := uuid.Parse(raw)
		if er != nil {
			return fiber.NewError(fiber.StatusBadRequest, "marked_by_teacher_id tidak valid")
		}
		tx = tx.Where("student_period_attendance_marked_by_teacher_id = ?", id)
	}

	// filter yang butuh konteks sesi → join
	needJoin := false
	joined := func() *gorm.DB {
		if !needJoin {
			needJoin = true
			tx = tx.Joins("JOIN attendance_sessions s ON s.attendance_session_id = student_period_attendance_session_id")
		}
		return tx
	}
	if raw := strings.TrimSpace(c.Query("section_id")); raw != "" {
		id, er := uuid.Parse(raw)
		if er != nil {
			return fiber.NewError(fiber.StatusBadRequest, "section_id tidak valid")
		}
		tx = joined().Where("s.attendance_session_section_id = ?", id)
	}
	if raw := strings.TrimSpace(c.Query("subject_id")); raw != "" {
		id, er := uuid.Parse(raw)
		if er != nil {
			return fiber.NewError(fiber.StatusBadRequest, "subject_id tidak valid")
		}
		tx = joined().Where("s.attendance_session_subject_id = ?", id)
	}
	if raw := strings.TrimSpace(c.Query("period_id")); raw != "" {
		id, er := uuid.Parse(raw)
		if er != nil {
			return fiber.NewError(fiber.StatusBadRequest, "period_id tidak valid")
		}
		tx = joined().Where("s.attendance_session_period_id = ?", id)
	}
	if raw := strings.TrimSpace(c.Query("date_from")); raw != "" {
		d, er := time.Parse("2006-01-02", raw)
		if er != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Format date_from tidak valid (YYYY-MM-DD)")
		}
		tx = joined().Where("s.attendance_session_date >= ?", d)
	}
	if raw := strings.TrimSpace(c.Query("date_to")); raw != "" {
		d, er := time.Parse("2006-01-02", raw)
		if er != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Format date_to tidak valid (YYYY-MM-DD)")
		}
		tx = joined().Where("s.attendance_session_date <= ?", d)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung record")
	}

	var rows []spaModel.StudentPeriodAttendanceModel
	if err := tx.
		Order("student_period_attendance_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil record kehadiran")
	}

	return helper.JsonList(c, "ok",
		spaDTO.FromStudentPeriodAttendanceModels(rows),
		helper.BuildPagination(total, paging.Page, paging.PerPage, len(rows)))
}

/* ===============================
   DETAIL / UPDATE / DELETE
=============================== */

func (ctrl *StudentPeriodAttendanceController) findScoped(branchID, id uuid.UUID) (*spaModel.StudentPeriodAttendanceModel, error) {
	var m spaModel.StudentPeriodAttendanceModel
	if err := ctrl.DB.
		First(&m, "student_period_attendance_id = ? AND student_period_attendance_branch_id = ?", id, branchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Record kehadiran tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil record kehadiran")
	}
	return &m, nil
}

// GET /student-period-attendance/:id
func (ctrl *StudentPeriodAttendanceController) GetByID(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	m, err := ctrl.findScoped(branchID, id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", spaDTO.FromStudentPeriodAttendanceModel(*m))
}

// buildUpdatePatch menyusun kolom yang berubah dari request partial.
// Menit telat hanya tersimpan kalau status akhir late; selain itu
// kolomnya di-null-kan supaya tidak ada sisa nilai dari status lama.
func buildUpdatePatch(current spaModel.AttendanceStatus, req spaDTO.UpdateStudentPeriodAttendanceRequest, now time.Time) map[string]interface{} {
	patch := map[string]interface{}{
		"student_period_attendance_updated_at": now,
	}
	final := current
	if req.StudentPeriodAttendanceStatus != nil {
		final = *req.StudentPeriodAttendanceStatus
		patch["student_period_attendance_status"] = final
	}
	if final == spaModel.AttendanceLate {
		if req.StudentPeriodAttendanceMinutesLate != nil {
			patch["student_period_attendance_minutes_late"] = *req.StudentPeriodAttendanceMinutesLate
		}
	} else if req.StudentPeriodAttendanceStatus != nil || req.StudentPeriodAttendanceMinutesLate != nil {
		patch["student_period_attendance_minutes_late"] = nil
	}
	if req.StudentPeriodAttendanceReason != nil {
		patch["student_period_attendance_reason"] = *req.StudentPeriodAttendanceReason
	}
	if req.StudentPeriodAttendanceNotes != nil {
		patch["student_period_attendance_notes"] = *req.StudentPeriodAttendanceNotes
	}
	return patch
}

// PUT /student-period-attendance/:id
func (ctrl *StudentPeriodAttendanceController) Update(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req spaDTO.UpdateStudentPeriodAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := ctrl.findScoped(branchID, id)
	if err != nil {
		return err
	}
	if err := ctrl.guardSessionWritable(branchID, m.StudentPeriodAttendanceSessionID); err != nil {
		return err
	}

	patch := buildUpdatePatch(m.StudentPeriodAttendanceStatus, req, time.Now())

	if err := ctrl.DB.Model(m).Updates(patch).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui record kehadiran")
	}

	updated, err := ctrl.findScoped(branchID, id)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Record kehadiran berhasil diperbarui", spaDTO.FromStudentPeriodAttendanceModel(*updated))
}

// DELETE /student-period-attendance/:id
func (ctrl *StudentPeriodAttendanceController) Delete(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	m, err := ctrl.findScoped(branchID, id)
	if err != nil {
		return err
	}
	if err := ctrl.guardSessionWritable(branchID, m.StudentPeriodAttendanceSessionID); err != nil {
		return err
	}

	if err := ctrl.DB.Delete(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus record kehadiran")
	}
	return helper.JsonDeleted(c, "Record kehadiran berhasil dihapus", fiber.Map{"student_period_attendance_id": id})
}
