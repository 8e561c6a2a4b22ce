// file: internals/features/school/attendance/student_attendance/controller/student_attendance_report_controller.go
package controller

import (
	"strings"
	"time"

	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"

	sessDTO "sekolahku_backend/internals/features/school/attendance/sessions/dto"
	sessModel "sekolahku_backend/internals/features/school/attendance/sessions/model"
	spaDTO "sekolahku_backend/internals/features/school/attendance/student_attendance/dto"
	spaModel "sekolahku_backend/internals/features/school/attendance/student_attendance/model"
	spaService "sekolahku_backend/internals/features/school/attendance/student_attendance/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type StudentAttendanceReportController struct {
	DB *gorm.DB
}

func NewStudentAttendanceReportController(db *gorm.DB) *StudentAttendanceReportController {
	return &StudentAttendanceReportController{DB: db}
}

func parseDateQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Format "+key+" tidak valid (YYYY-MM-DD)")
	}
	return &d, nil
}

/* ===============================
   SUMMARY PER SISWA
=============================== */

// GET /student-period-attendance/student/:student_id/summary?date_from=&date_to=
// Agregat di DB (GROUP BY), bukan tarik semua baris ke aplikasi.
func (ctrl *StudentAttendanceReportController) StudentSummary(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "student_id tidak valid")
	}
	dateFrom, err := parseDateQuery(c, "date_from")
	if err != nil {
		return err
	}
	dateTo, err := parseDateQuery(c, "date_to")
	if err != nil {
		return err
	}

	base := ctrl.DB.Table("student_period_attendances spa").
		Joins("JOIN attendance_sessions s ON s.attendance_session_id = spa.student_period_attendance_session_id").
		Where("spa.student_period_attendance_branch_id = ?", branchID).
		Where("spa.student_period_attendance_student_id = ?", studentID)
	if dateFrom != nil {
		base = base.Where("s.attendance_session_date >= ?", *dateFrom)
	}
	if dateTo != nil {
		base = base.Where("s.attendance_session_date <= ?", *dateTo)
	}

	// total per status
	var statusRows []struct {
		Status string `gorm:"column:status"`
		N      int    `gorm:"column:n"`
	}
	if err := base.Session(&gorm.Session{}).
		Select("spa.student_period_attendance_status AS status, COUNT(*) AS n").
		Group("spa.student_period_attendance_status").
		Scan(&statusRows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung ringkasan")
	}

	var counts spaDTO.StatusCounts
	for _, r := range statusRows {
		spaService.AddStatus(&counts, spaModel.AttendanceStatus(r.Status), r.N)
	}

	// breakdown per mapel
	var subjRows []struct {
		SubjectID   *uuid.UUID `gorm:"column:subject_id"`
		SubjectName *string    `gorm:"column:subject_name"`
		Status      string     `gorm:"column:status"`
		N           int        `gorm:"column:n"`
	}
	if err := base.Session(&gorm.Session{}).
		Joins("LEFT JOIN subjects sub ON sub.subject_id = s.attendance_session_subject_id").
		Select("s.attendance_session_subject_id AS subject_id, sub.subject_name AS subject_name, spa.student_period_attendance_status AS status, COUNT(*) AS n").
		Group("s.attendance_session_subject_id, sub.subject_name, spa.student_period_attendance_status").
		Order("sub.subject_name ASC NULLS LAST").
		Scan(&subjRows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung ringkasan per mapel")
	}

	bySubject := make([]spaDTO.SubjectCount, 0)
	idx := map[string]int{}
	for _, r := range subjRows {
		key := ""
		if r.SubjectID != nil {
			key = r.SubjectID.String()
		}
		i, ok := idx[key]
		if !ok {
			bySubject = append(bySubject, spaDTO.SubjectCount{SubjectID: r.SubjectID, SubjectName: r.SubjectName})
			i = len(bySubject) - 1
			idx[key] = i
		}
		spaService.AddStatus(&bySubject[i].Counts, spaModel.AttendanceStatus(r.Status), r.N)
	}

	resp := spaDTO.StudentSummaryResponse{
		StudentID:      studentID,
		Counts:         counts,
		BySubject:      bySubject,
		AttendanceRate: spaService.AttendanceRate(counts),
	}
	if dateFrom != nil {
		s := dateFrom.Format("2006-01-02")
		resp.DateFrom = &s
	}
	if dateTo != nil {
		s := dateTo.Format("2006-01-02")
		resp.DateTo = &s
	}

	return helper.JsonOK(c, "ok", resp)
}

/* ===============================
   LAPORAN PER SESI
=============================== */

type sessionReportRow struct {
	StudentID         uuid.UUID  `gorm:"column:student_id" json:"student_id"`
	StudentName       string     `gorm:"column:student_name" json:"student_name"`
	StudentRollNumber *int       `gorm:"column:student_roll_number" json:"student_roll_number,omitempty"`
	Status            *string    `gorm:"column:status" json:"status"`
	MinutesLate       *int       `gorm:"column:minutes_late" json:"minutes_late,omitempty"`
	Reason            *string    `gorm:"column:reason" json:"reason,omitempty"`
	Notes             *string    `gorm:"column:notes" json:"notes,omitempty"`
	MarkedAt          *time.Time `gorm:"column:marked_at" json:"marked_at,omitempty"`
}

// GET /student-period-attendance/session/:session_id/report
// Urut nomor absen; siswa belum ditandai tetap muncul (status null).
func (ctrl *StudentAttendanceReportController) SessionReport(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "session_id tidak valid")
	}

	var sess sessModel.AttendanceSessionModel
	if err := ctrl.DB.
		First(&sess, "attendance_session_id = ? AND attendance_session_branch_id = ?", sessionID, branchID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Sesi tidak ditemukan")
	}

	var rows []sessionReportRow
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
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil laporan sesi")
	}

	var counts spaDTO.StatusCounts
	for _, r := range rows {
		if r.Status != nil {
			spaService.AddStatus(&counts, spaModel.AttendanceStatus(*r.Status), 1)
		}
	}

	return helper.JsonOK(c, "ok", spaDTO.SessionReportResponse{
		Session: sessDTO.FromAttendanceSessionModel(sess),
		Rows:    rows,
		Counts:  counts,
	})
}

/* ===============================
   DASHBOARD
=============================== */

// GET /student-period-attendance/dashboard/stats?date_from=&date_to=
// Tanpa rentang = hari ini.
func (ctrl *StudentAttendanceReportController) DashboardStats(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	dateFrom, err := parseDateQuery(c, "date_from")
	if err != nil {
		return err
	}
	dateTo, err := parseDateQuery(c, "date_to")
	if err != nil {
		return err
	}

	if dateFrom == nil && dateTo == nil {
		loc, errLoc := time.LoadLocation("Asia/Jakarta")
		if errLoc != nil {
			loc = time.FixedZone("Asia/Jakarta", 7*3600)
		}
		now := time.Now().In(loc)
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		dateFrom, dateTo = &today, &today
	}
	if dateFrom == nil {
		dateFrom = dateTo
	}
	if dateTo == nil {
		dateTo = dateFrom
	}

	var statusRows []struct {
		Status string `gorm:"column:status"`
		N      int    `gorm:"column:n"`
	}
	if err := ctrl.DB.Table("student_period_attendances spa").
		Joins("JOIN attendance_sessions s ON s.attendance_session_id = spa.student_period_attendance_session_id").
		Where("spa.student_period_attendance_branch_id = ?", branchID).
		Where("s.attendance_session_date BETWEEN ? AND ?", *dateFrom, *dateTo).
		Select("spa.student_period_attendance_status AS status, COUNT(*) AS n").
		Group("spa.student_period_attendance_status").
		Scan(&statusRows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung statistik")
	}

	var counts spaDTO.StatusCounts
	for _, r := range statusRows {
		spaService.AddStatus(&counts, spaModel.AttendanceStatus(r.Status), r.N)
	}

	return helper.JsonOK(c, "ok", spaDTO.DashboardStatsResponse{
		DateFrom:       dateFrom.Format("2006-01-02"),
		DateTo:         dateTo.Format("2006-01-02"),
		Counts:         counts,
		AttendanceRate: spaService.AttendanceRate(counts),
	})
}

/* ===============================
   REKAP PER MAPEL
=============================== */

// GET /student-period-attendance/reports/subject-wise?section_id=&date_from=&date_to=
func (ctrl *StudentAttendanceReportController) SubjectWiseReport(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	dateFrom, err := parseDateQuery(c, "date_from")
	if err != nil {
		return err
	}
	dateTo, err := parseDateQuery(c, "date_to")
	if err != nil {
		return err
	}

	tx := ctrl.DB.Table("student_period_attendances spa").
		Joins("JOIN attendance_sessions s ON s.attendance_session_id = spa.student_period_attendance_session_id").
		Joins("LEFT JOIN subjects sub ON sub.subject_id = s.attendance_session_subject_id").
		Where("spa.student_period_attendance_branch_id = ?", branchID)
	if raw := strings.TrimSpace(c.Query("section_id")); raw != "" {
		id, er := uuid.Parse(raw)
		if er != nil {
			return fiber.NewError(fiber.StatusBadRequest, "section_id tidak valid")
		}
		tx = tx.Where("s.attendance_session_section_id = ?", id)
	}
	if dateFrom != nil {
		tx = tx.Where("s.attendance_session_date >= ?", *dateFrom)
	}
	if dateTo != nil {
		tx = tx.Where("s.attendance_session_date <= ?", *dateTo)
	}

	var rows []struct {
		SubjectID   *uuid.UUID `gorm:"column:subject_id"`
		SubjectName *string    `gorm:"column:subject_name"`
		Status      string     `gorm:"column:status"`
		N           int        `gorm:"column:n"`
	}
	if err := tx.
		Select("s.attendance_session_subject_id AS subject_id, sub.subject_name AS subject_name, spa.student_period_attendance_status AS status, COUNT(*) AS n").
		Group("s.attendance_session_subject_id, sub.subject_name, spa.student_period_attendance_status").
		Order("sub.subject_name ASC NULLS LAST").
		Scan(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil rekap per mapel")
	}

	out := make([]spaDTO.SubjectWiseRow, 0)
	idx := map[string]int{}
	for _, r := range rows {
		key := ""
		if r.SubjectID != nil {
			key = r.SubjectID.String()
		}
		i, ok := idx[key]
		if !ok {
			out = append(out, spaDTO.SubjectWiseRow{SubjectID: r.SubjectID, SubjectName: r.SubjectName})
			i = len(out) - 1
			idx[key] = i
		}
		spaService.AddStatus(&out[i].Counts, spaModel.AttendanceStatus(r.Status), r.N)
	}
	for i := range out {
		out[i].AttendanceRate = spaService.AttendanceRate(out[i].Counts)
	}

	return helper.JsonOK(c, "ok", out)
}

/* ===============================
   POLA ABSENSI (analytics)
=============================== */

// GET /student-period-attendance/analytics/patterns?section_id=&date_from=&date_to=&min_absences=
// Deret status per siswa urut tanggal sesi — bahan deteksi pola
// (mis. bolos tiap Senin) di sisi klien.
func (ctrl *StudentAttendanceReportController) AttendancePatterns(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	dateFrom, err := parseDateQuery(c, "date_from")
	if err != nil {
		return err
	}
	dateTo, err := parseDateQuery(c, "date_to")
	if err != nil {
		return err
	}
	minAbsences := c.QueryInt("min_absences", 0)

	var sectionID *uuid.UUID
	if raw := strings.TrimSpace(c.Query("section_id")); raw != "" {
		id, er := uuid.Parse(raw)
		if er != nil {
			return fiber.NewError(fiber.StatusBadRequest, "section_id tidak valid")
		}
		sectionID = &id
	}

	type patternScan struct {
		StudentID uuid.UUID      `gorm:"column:student_id"`
		Statuses  pq.StringArray `gorm:"column:statuses;type:text[]"`
		Total     int            `gorm:"column:total"`
		Absences  int            `gorm:"column:absences"`
	}

	tx := ctrl.DB.Table("student_period_attendances spa").
		Joins("JOIN attendance_sessions s ON s.attendance_session_id = spa.student_period_attendance_session_id").
		Where("spa.student_period_attendance_branch_id = ?", branchID)
	if sectionID != nil {
		tx = tx.Where("s.attendance_session_section_id = ?", *sectionID)
	}
	if dateFrom != nil {
		tx = tx.Where("s.attendance_session_date >= ?", *dateFrom)
	}
	if dateTo != nil {
		tx = tx.Where("s.attendance_session_date <= ?", *dateTo)
	}

	var scans []patternScan
	if err := tx.
		Select(`spa.student_period_attendance_student_id AS student_id,
array_agg(spa.student_period_attendance_status::text ORDER BY s.attendance_session_date ASC, s.attendance_session_starts_at ASC) AS statuses,
COUNT(*) AS total,
COUNT(*) FILTER (WHERE spa.student_period_attendance_status = 'absent') AS absences`).
		Group("spa.student_period_attendance_student_id").
		Having("COUNT(*) FILTER (WHERE spa.student_period_attendance_status = 'absent') >= ?", minAbsences).
		Order("absences DESC").
		Scan(&scans).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil pola absensi")
	}

	out := make([]spaDTO.StudentPatternRow, 0, len(scans))
	for _, s := range scans {
		out = append(out, spaDTO.StudentPatternRow{
			StudentID: s.StudentID,
			Statuses:  []string(s.Statuses),
			Total:     s.Total,
			Absences:  s.Absences,
		})
	}

	return helper.JsonOK(c, "ok", out)
}
