// file: internals/features/school/academics/timetable/controller/timetable_period_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"

	ttDTO "sekolahku_backend/internals/features/school/academics/timetable/dto"
	ttModel "sekolahku_backend/internals/features/school/academics/timetable/model"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TimetablePeriodController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewTimetablePeriodController(db *gorm.DB) *TimetablePeriodController {
	return &TimetablePeriodController{DB: db, validate: validator.New()}
}

// normalizeTOD: terima "HH:MM" atau "HH:MM:SS", simpan seragam "HH:MM:SS"
func normalizeTOD(s string) (string, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t.Format("15:04:05"), nil
	}
	if t, err := time.Parse("15:04", s); err == nil {
		return t.Format("15:04:05"), nil
	}
	return "", errors.New("format jam tidak valid")
}

// hasOverlap: bentrok = section ATAU guru yang sama, hari sama, rentang jam
// beririsan, dan rentang berlaku beririsan. Period istirahat tidak dihitung.
func (ctrl *TimetablePeriodController) hasOverlap(
	branchID uuid.UUID,
	excludeID *uuid.UUID,
	sectionID uuid.UUID,
	teacherID *uuid.UUID,
	dow int,
	start, end string,
	from time.Time,
	to *time.Time,
) (bool, error) {
	tx := ctrl.DB.Model(&ttModel.TimetablePeriodModel{}).
		Where("timetable_period_branch_id = ?", branchID).
		Where("timetable_period_day_of_week = ?", dow).
		Where("timetable_period_is_active = TRUE").
		Where("timetable_period_is_break = FALSE").
		Where("timetable_period_start_time < ?::time AND timetable_period_end_time > ?::time", end, start)

	if teacherID != nil {
		tx = tx.Where("timetable_period_section_id = ? OR timetable_period_teacher_id = ?", sectionID, *teacherID)
	} else {
		tx = tx.Where("timetable_period_section_id = ?", sectionID)
	}

	// irisan rentang berlaku (to NULL = open ended)
	if to != nil {
		tx = tx.Where("timetable_period_active_from <= ?", *to)
	}
	tx = tx.Where("timetable_period_active_to IS NULL OR timetable_period_active_to >= ?", from)

	if excludeID != nil {
		tx = tx.Where("timetable_period_id <> ?", *excludeID)
	}

	var cnt int64
	if err := tx.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

/* ===============================
   CREATE
=============================== */

// POST /timetable/periods
func (ctrl *TimetablePeriodController) Create(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	var req ttDTO.CreateTimetablePeriodRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	start, err := normalizeTOD(req.TimetablePeriodStartTime)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Format jam mulai tidak valid (HH:MM)")
	}
	end, err := normalizeTOD(req.TimetablePeriodEndTime)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Format jam selesai tidak valid (HH:MM)")
	}
	if start >= end {
		return fiber.NewError(fiber.StatusBadRequest, "Jam mulai harus sebelum jam selesai")
	}

	from, _ := time.Parse("2006-01-02", req.TimetablePeriodActiveFrom)
	var to *time.Time
	if req.TimetablePeriodActiveTo != nil {
		d, _ := time.Parse("2006-01-02", *req.TimetablePeriodActiveTo)
		if d.Before(from) {
			return fiber.NewError(fiber.StatusBadRequest, "active_to harus setelah active_from")
		}
		to = &d
	}

	if !req.TimetablePeriodIsBreak {
		overlap, er := ctrl.hasOverlap(branchID, nil, req.TimetablePeriodSectionID, req.TimetablePeriodTeacherID,
			req.TimetablePeriodDayOfWeek, start, end, from, to)
		if er != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa bentrok jadwal")
		}
		if overlap {
			return fiber.NewError(fiber.StatusConflict, "Jadwal bentrok dengan period lain")
		}
	}

	m := req.ToModel(branchID, start, end, from, to)
	if err := ctrl.DB.Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat period")
	}

	return helper.JsonCreated(c, "Period berhasil dibuat", ttDTO.FromTimetablePeriodModel(*m))
}

/* ===============================
   LIST & DETAIL
=============================== */

// GET /timetable/periods?section_id=&teacher_id=&day_of_week=&active_on=
func (ctrl *TimetablePeriodController) List(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 50, 200)

	tx := ctrl.DB.Model(&ttModel.TimetablePeriodModel{}).
		Where("timetable_period_branch_id = ?", branchID)

	if raw := strings.TrimSpace(c.Query("section_id")); raw != "" {
		id, er := uuid.Parse(raw)
		if er != nil {
			return fiber.NewError(fiber.StatusBadRequest, "section_id tidak valid")
		}
		tx = tx.Where("timetable_period_section_id = ?", id)
	}
	if raw := strings.TrimSpace(c.Query("teacher_id")); raw != "" {
		id, er := uuid.Parse(raw)
		if er != nil {
			return fiber.NewError(fiber.StatusBadRequest, "teacher_id tidak valid")
		}
		tx = tx.Where("timetable_period_teacher_id = ?", id)
	}
	if dow := c.QueryInt("day_of_week", 0); dow >= 1 && dow <= 7 {
		tx = tx.Where("timetable_period_day_of_week = ?", dow)
	}
	if raw := strings.TrimSpace(c.Query("active_on")); raw != "" {
		d, er := time.Parse("2006-01-02", raw)
		if er != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Format active_on tidak valid (YYYY-MM-DD)")
		}
		tx = tx.Where("timetable_period_is_active = TRUE").
			Where("timetable_period_active_from <= ?", d).
			Where("timetable_period_active_to IS NULL OR timetable_period_active_to >= ?", d)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung period")
	}

	var rows []ttModel.TimetablePeriodModel
	if err := tx.
		Order("timetable_period_day_of_week ASC, timetable_period_start_time ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil period")
	}

	return helper.JsonList(c, "ok",
		ttDTO.FromTimetablePeriodModels(rows),
		helper.BuildPagination(total, paging.Page, paging.PerPage, len(rows)))
}

// GET /timetable/periods/:id
func (ctrl *TimetablePeriodController) GetByID(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var m ttModel.TimetablePeriodModel
	if err := ctrl.DB.
		First(&m, "timetable_period_id = ? AND timetable_period_branch_id = ?", id, branchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Period tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil period")
	}
	return helper.JsonOK(c, "ok", ttDTO.FromTimetablePeriodModel(m))
}

/* ===============================
   UPDATE & DELETE
=============================== */

// PUT /timetable/periods/:id
func (ctrl *TimetablePeriodController) Update(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req ttDTO.UpdateTimetablePeriodRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m ttModel.TimetablePeriodModel
	if err := ctrl.DB.
		First(&m, "timetable_period_id = ? AND timetable_period_branch_id = ?", id, branchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Period tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil period")
	}

	// gabungkan nilai baru di atas nilai lama, lalu cek bentrok sekali
	dow := m.TimetablePeriodDayOfWeek
	if req.TimetablePeriodDayOfWeek != nil {
		dow = *req.TimetablePeriodDayOfWeek
	}
	start := m.TimetablePeriodStartTime
	if req.TimetablePeriodStartTime != nil {
		s, er := normalizeTOD(*req.TimetablePeriodStartTime)
		if er != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Format jam mulai tidak valid (HH:MM)")
		}
		start = s
	}
	end := m.TimetablePeriodEndTime
	if req.TimetablePeriodEndTime != nil {
		s, er := normalizeTOD(*req.TimetablePeriodEndTime)
		if er != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Format jam selesai tidak valid (HH:MM)")
		}
		end = s
	}
	if start >= end {
		return fiber.NewError(fiber.StatusBadRequest, "Jam mulai harus sebelum jam selesai")
	}
	teacherID := m.TimetablePeriodTeacherID
	if req.TimetablePeriodTeacherID != nil {
		teacherID = req.TimetablePeriodTeacherID
	}
	to := m.TimetablePeriodActiveTo
	if req.TimetablePeriodActiveTo != nil {
		d, _ := time.Parse("2006-01-02", *req.TimetablePeriodActiveTo)
		to = &d
	}

	if !m.TimetablePeriodIsBreak {
		overlap, er := ctrl.hasOverlap(branchID, &m.TimetablePeriodID, m.TimetablePeriodSectionID, teacherID,
			dow, start, end, m.TimetablePeriodActiveFrom, to)
		if er != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa bentrok jadwal")
		}
		if overlap {
			return fiber.NewError(fiber.StatusConflict, "Jadwal bentrok dengan period lain")
		}
	}

	patch := map[string]interface{}{
		"timetable_period_day_of_week": dow,
		"timetable_period_start_time":  start,
		"timetable_period_end_time":    end,
		"timetable_period_updated_at":  time.Now(),
	}
	if req.TimetablePeriodSubjectID != nil {
		patch["timetable_period_subject_id"] = *req.TimetablePeriodSubjectID
	}
	if req.TimetablePeriodTeacherID != nil {
		patch["timetable_period_teacher_id"] = *req.TimetablePeriodTeacherID
	}
	if req.TimetablePeriodRoom != nil {
		patch["timetable_period_room"] = *req.TimetablePeriodRoom
	}
	if req.TimetablePeriodActiveTo != nil {
		patch["timetable_period_active_to"] = to
	}
	if req.TimetablePeriodIsActive != nil {
		patch["timetable_period_is_active"] = *req.TimetablePeriodIsActive
	}

	if err := ctrl.DB.Model(&m).Updates(patch).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui period")
	}

	var updated ttModel.TimetablePeriodModel
	if err := ctrl.DB.First(&updated, "timetable_period_id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil period")
	}
	return helper.JsonUpdated(c, "Period berhasil diperbarui", ttDTO.FromTimetablePeriodModel(updated))
}

// DELETE /timetable/periods/:id (soft delete — sesi historis tetap utuh)
func (ctrl *TimetablePeriodController) Delete(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	res := ctrl.DB.
		Where("timetable_period_id = ? AND timetable_period_branch_id = ?", id, branchID).
		Delete(&ttModel.TimetablePeriodModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus period")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Period tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Period berhasil dihapus", fiber.Map{"timetable_period_id": id})
}
