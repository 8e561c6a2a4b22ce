// file: internals/features/school/attendance/sessions/controller/attendance_session_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"

	sessDTO "sekolahku_backend/internals/features/school/attendance/sessions/dto"
	sessModel "sekolahku_backend/internals/features/school/attendance/sessions/model"
	sessService "sekolahku_backend/internals/features/school/attendance/sessions/service"
	spaModel "sekolahku_backend/internals/features/school/attendance/student_attendance/model"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

/* ===============================
   Controller & Constructor
=============================== */

type AttendanceSessionController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewAttendanceSessionController(db *gorm.DB) *AttendanceSessionController {
	return &AttendanceSessionController{DB: db, validate: validator.New()}
}

// findSessionScoped: ambil sesi + guard tenant. Semua handler lewat sini
// supaya scoping branch tidak bisa kelewat di satu call site pun.
func (ctrl *AttendanceSessionController) findSessionScoped(branchID, sessionID uuid.UUID) (*sessModel.AttendanceSessionModel, error) {
	var sess sessModel.AttendanceSessionModel
	if err := ctrl.DB.
		First(&sess, "attendance_session_id = ? AND attendance_session_branch_id = ?", sessionID, branchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Sesi tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil sesi")
	}
	return &sess, nil
}

/* ===============================
   CREATE (sesi ad hoc)
=============================== */

// POST /attendance/sessions
func (ctrl *AttendanceSessionController) CreateAttendanceSession(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	var req sessDTO.CreateAttendanceSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}

	// Force tenant
	req.AttendanceSessionBranchID = branchID

	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	// Cek unik (period, date) kalau sesi diturunkan dari period
	if req.AttendanceSessionPeriodID != nil {
		var cnt int64
		if err := ctrl.DB.Model(&sessModel.AttendanceSessionModel{}).
			Where("attendance_session_period_id = ? AND attendance_session_date = ?",
				req.AttendanceSessionPeriodID, req.AttendanceSessionDate).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa sesi yang sudah ada")
		} else if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "Sesi untuk period dan tanggal tersebut sudah ada")
		}
	}

	m := req.ToModel()
	if err := ctrl.DB.Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat sesi")
	}

	return helper.JsonCreated(c, "Sesi berhasil dibuat", sessDTO.FromAttendanceSessionModel(*m))
}

/* ===============================
   CURRENT & TODAY (lookup guru)
=============================== */

// GET /attendance/sessions/current?teacher_id=
// Best-effort: null kalau tidak ada time-slot/period yang cocok sekarang.
func (ctrl *AttendanceSessionController) GetCurrentSession(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	teacherID, err := helperAuth.ResolveTeacherID(c)
	if err != nil {
		return err
	}

	loc, errLoc := time.LoadLocation("Asia/Jakarta")
	if errLoc != nil {
		loc = time.FixedZone("Asia/Jakarta", 7*3600)
	}
	now := time.Now().In(loc)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	nowTOD := now.Format("15:04:05")

	// Period guru ini yang sedang berjalan sekarang
	var period struct {
		ID        uuid.UUID  `gorm:"column:period_id"`
		SectionID uuid.UUID  `gorm:"column:section_id"`
		SubjectID *uuid.UUID `gorm:"column:subject_id"`
		StartStr  string     `gorm:"column:start_str"`
		EndStr    string     `gorm:"column:end_str"`
	}
	q := `
SELECT
  timetable_period_id         AS period_id,
  timetable_period_section_id AS section_id,
  timetable_period_subject_id AS subject_id,
  timetable_period_start_time::text AS start_str,
  timetable_period_end_time::text   AS end_str
FROM timetable_periods
WHERE timetable_period_branch_id = ?
  AND timetable_period_teacher_id = ?
  AND timetable_period_day_of_week = ?
  AND timetable_period_is_active = TRUE
  AND timetable_period_is_break = FALSE
  AND timetable_period_start_time <= ?::time
  AND timetable_period_end_time > ?::time
  AND timetable_period_active_from <= ?
  AND (timetable_period_active_to IS NULL OR timetable_period_active_to >= ?)
  AND timetable_period_deleted_at IS NULL
LIMIT 1`
	if err := ctrl.DB.Raw(q, branchID, teacherID, sessService.ISOWeekday(now), nowTOD, nowTOD, day, day).
		Scan(&period).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil timetable")
	}
	if period.ID == uuid.Nil {
		// bukan error — memang tidak ada jadwal sekarang
		return helper.JsonOK(c, "Tidak ada sesi berjalan", nil)
	}

	// Lazy create sesi hari ini untuk period tsb
	var sess sessModel.AttendanceSessionModel
	err = ctrl.DB.
		First(&sess, "attendance_session_period_id = ? AND attendance_session_date = ?", period.ID, day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		pid := period.ID
		tid := teacherID
		sess = sessModel.AttendanceSessionModel{
			AttendanceSessionBranchID:          branchID,
			AttendanceSessionPeriodID:          &pid,
			AttendanceSessionSectionID:         period.SectionID,
			AttendanceSessionSubjectID:         period.SubjectID,
			AttendanceSessionDate:              day,
			AttendanceSessionAssignedTeacherID: &tid,
			AttendanceSessionStatus:            sessModel.SessionStatusScheduled,
		}
		if st, er := sessService.CombineDateAndTOD(day, period.StartStr, loc); er == nil {
			sess.AttendanceSessionStartsAt = &st
		}
		// race dua request pertama → yang kalah conflict ambil ulang
		if er := ctrl.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&sess).Error; er != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat sesi")
		}
		if sess.AttendanceSessionID == uuid.Nil {
			if er := ctrl.DB.
				First(&sess, "attendance_session_period_id = ? AND attendance_session_date = ?", period.ID, day).Error; er != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil sesi")
			}
		}
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil sesi")
	}

	return helper.JsonOK(c, "ok", sessDTO.FromAttendanceSessionModel(sess))
}

// GET /attendance/sessions/today?teacher_id=
// Semua sesi hari ini di mana guru adalah pengajar terjadwal ATAU pengganti.
func (ctrl *AttendanceSessionController) ListTodaySessions(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	teacherID, err := helperAuth.ResolveTeacherID(c)
	if err != nil {
		return err
	}

	loc, errLoc := time.LoadLocation("Asia/Jakarta")
	if errLoc != nil {
		loc = time.FixedZone("Asia/Jakarta", 7*3600)
	}
	now := time.Now().In(loc)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var sessions []sessModel.AttendanceSessionModel
	if err := ctrl.DB.
		Where("attendance_session_branch_id = ? AND attendance_session_date = ?", branchID, day).
		Where("attendance_session_assigned_teacher_id = ? OR attendance_session_actual_teacher_id = ?", teacherID, teacherID).
		Order("attendance_session_starts_at ASC NULLS LAST").
		Find(&sessions).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil sesi hari ini")
	}

	return helper.JsonOK(c, "ok", sessDTO.FromAttendanceSessionModels(sessions))
}

/* ===============================
   LIST (paginated) & DETAIL
=============================== */

// GET /attendance/sessions?date=&teacher_id=&section_id=&status=&page=&per_page=
func (ctrl *AttendanceSessionController) ListSessions(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctrl.DB.Model(&sessModel.AttendanceSessionModel{}).
		Where("attendance_session_branch_id = ?", branchID)

	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		d, er := time.Parse("2006-01-02", raw)
		if er != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Format date tidak valid (YYYY-MM-DD)")
		}
		tx = tx.Where("attendance_session_date = ?", d)
	}
	if raw := strings.TrimSpace(c.Query("teacher_id")); raw != "" {
		id, er := uuid.Parse(raw)
		if er != nil {
			return fiber.NewError(fiber.StatusBadRequest, "teacher_id tidak valid")
		}
		tx = tx.Where("attendance_session_assigned_teacher_id = ? OR attendance_session_actual_teacher_id = ?", id, id)
	}
	if raw := strings.TrimSpace(c.Query("section_id")); raw != "" {
		id, er := uuid.Parse(raw)
		if er != nil {
			return fiber.NewError(fiber.StatusBadRequest, "section_id tidak valid")
		}
		tx = tx.Where("attendance_session_section_id = ?", id)
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		tx = tx.Where("attendance_session_status = ?", raw)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung sesi")
	}

	var sessions []sessModel.AttendanceSessionModel
	if err := tx.
		Order("attendance_session_date DESC, attendance_session_starts_at ASC NULLS LAST").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&sessions).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil sesi")
	}

	return helper.JsonList(c, "ok",
		sessDTO.FromAttendanceSessionModels(sessions),
		helper.BuildPagination(total, paging.Page, paging.PerPage, len(sessions)))
}

// GET /attendance/sessions/:id
func (ctrl *AttendanceSessionController) GetSession(c *fiber.Ctx) error {
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
	return helper.JsonOK(c, "ok", sessDTO.FromAttendanceSessionModel(*sess))
}

/* ===============================
   ROSTER
=============================== */

type rosterRow struct {
	StudentID         uuid.UUID  `gorm:"column:student_id"`
	StudentName       string     `gorm:"column:student_name"`
	StudentRollNumber *int       `gorm:"column:student_roll_number"`
	Status            *string    `gorm:"column:status"`
	MinutesLate       *int       `gorm:"column:minutes_late"`
	Reason            *string    `gorm:"column:reason"`
	Notes             *string    `gorm:"column:notes"`
	MarkedAt          *time.Time `gorm:"column:marked_at"`
}

// GET /attendance/sessions/:id/roster
// Satu entri per siswa aktif di section; status null = belum ditandai.
// Section tanpa siswa valid → roster kosong, bukan error.
func (ctrl *AttendanceSessionController) GetSessionRoster(c *fiber.Ctx) error {
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

	var rows []rosterRow
	q := `
SELECT
  st.student_id          AS student_id,
  st.student_name        AS student_name,
  st.student_roll_number AS student_roll_number,
  spa.student_period_attendance_status       AS status,
  spa.student_period_attendance_minutes_late AS minutes_late,
  spa.student_period_attendance_reason       AS reason,
  spa.student_period_attendance_notes        AS notes,
  spa.student_period_attendance_marked_at    AS marked_at
FROM class_section_students css
JOIN students st
  ON st.student_id = css.class_section_student_student_id
 AND st.student_deleted_at IS NULL
LEFT JOIN student_period_attendances spa
  ON spa.student_period_attendance_session_id = ?
 AND spa.student_period_attendance_student_id = st.student_id
WHERE css.class_section_student_section_id = ?
  AND css.class_section_student_is_active = TRUE
ORDER BY st.student_roll_number ASC NULLS LAST, st.student_name ASC`
	if err := ctrl.DB.Raw(q, sess.AttendanceSessionID, sess.AttendanceSessionSectionID).Scan(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil roster")
	}

	out := make([]sessDTO.RosterEntryResponse, 0, len(rows))
	for _, r := range rows {
		entry := sessDTO.RosterEntryResponse{
			StudentID:         r.StudentID,
			StudentName:       r.StudentName,
			StudentRollNumber: r.StudentRollNumber,
			MinutesLate:       r.MinutesLate,
			Reason:            r.Reason,
			Notes:             r.Notes,
			MarkedAt:          r.MarkedAt,
		}
		if r.Status != nil {
			st := spaModel.AttendanceStatus(*r.Status)
			entry.Status = &st
		}
		out = append(out, entry)
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"session": sessDTO.FromAttendanceSessionModel(*sess),
		"roster":  out,
	})
}
