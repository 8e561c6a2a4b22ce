// file: internals/features/school/attendance/sessions/service/generate_sessions_service.go
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	sessModel "sekolahku_backend/internals/features/school/attendance/sessions/model"
	ttModel "sekolahku_backend/internals/features/school/academics/timetable/model"
)

/* =========================
   Generator + Options
========================= */

type Generator struct{ DB *gorm.DB }

type GenerateOptions struct {
	TZName    string
	BatchSize int
}

type GenerateResult struct {
	Generated int
	Skipped   int
}

// baris period + nama konteks (sekali query, untuk snapshot)
type periodRow struct {
	ID        uuid.UUID  `gorm:"column:period_id"`
	SectionID uuid.UUID  `gorm:"column:section_id"`
	SubjectID *uuid.UUID `gorm:"column:subject_id"`
	TeacherID *uuid.UUID `gorm:"column:teacher_id"`
	Room      *string    `gorm:"column:room"`
	StartStr  string     `gorm:"column:start_str"`
	EndStr    string     `gorm:"column:end_str"`

	SectionName *string `gorm:"column:section_name"`
	SubjectName *string `gorm:"column:subject_name"`
	TeacherName *string `gorm:"column:teacher_name"`
}

// GenerateForDate: turunkan sesi dari timetable untuk satu tanggal.
// Idempotent — period yang sudah punya sesi di tanggal tsb di-skip.
func (g *Generator) GenerateForDate(
	ctx context.Context,
	branchID uuid.UUID,
	date time.Time,
	opts *GenerateOptions,
) (GenerateResult, error) {
	var res GenerateResult

	if opts == nil {
		opts = &GenerateOptions{}
	}
	if opts.TZName == "" {
		opts.TZName = "Asia/Jakarta"
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 500
	}
	loc, err := time.LoadLocation(opts.TZName)
	if err != nil {
		loc = time.FixedZone("Asia/Jakarta", 7*3600)
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dow := ISOWeekday(day)

	// 1) Period aktif, bukan break, rentang berlaku mencakup tanggal
	var pr []periodRow
	q := `
SELECT
  p.timetable_period_id         AS period_id,
  p.timetable_period_section_id AS section_id,
  p.timetable_period_subject_id AS subject_id,
  p.timetable_period_teacher_id AS teacher_id,
  p.timetable_period_room       AS room,
  p.timetable_period_start_time::text AS start_str,
  p.timetable_period_end_time::text   AS end_str,
  sec.class_section_name AS section_name,
  subj.subject_name      AS subject_name,
  tea.teacher_name       AS teacher_name
FROM timetable_periods p
LEFT JOIN class_sections sec ON sec.class_section_id = p.timetable_period_section_id
LEFT JOIN subjects subj      ON subj.subject_id = p.timetable_period_subject_id
LEFT JOIN teachers tea       ON tea.teacher_id = p.timetable_period_teacher_id
WHERE p.timetable_period_branch_id = ?
  AND p.timetable_period_day_of_week = ?
  AND p.timetable_period_is_active = TRUE
  AND p.timetable_period_is_break = FALSE
  AND p.timetable_period_active_from <= ?
  AND (p.timetable_period_active_to IS NULL OR p.timetable_period_active_to >= ?)
  AND p.timetable_period_deleted_at IS NULL
ORDER BY p.timetable_period_start_time`
	if err := g.DB.WithContext(ctx).Raw(q, branchID, dow, day, day).Scan(&pr).Error; err != nil {
		return res, err
	}
	if len(pr) == 0 {
		return res, nil
	}

	// 2) Period yang sudah punya sesi di tanggal tsb → skip (idempotent)
	periodIDs := make([]uuid.UUID, 0, len(pr))
	for _, p := range pr {
		periodIDs = append(periodIDs, p.ID)
	}
	var existing []uuid.UUID
	if err := g.DB.WithContext(ctx).
		Model(&sessModel.AttendanceSessionModel{}).
		Where("attendance_session_branch_id = ? AND attendance_session_date = ? AND attendance_session_period_id IN ?",
			branchID, day, periodIDs).
		Pluck("attendance_session_period_id", &existing).Error; err != nil {
		return res, err
	}
	has := make(map[uuid.UUID]bool, len(existing))
	for _, id := range existing {
		has[id] = true
	}

	// 3) Build rows
	rows, skipped := buildSessionRows(branchID, day, pr, has, loc)
	res.Skipped = skipped
	if len(rows) == 0 {
		return res, nil
	}

	// 4) Idempotent insert (batch)
	tx := g.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(rows, opts.BatchSize)
	if tx.Error != nil {
		return res, tx.Error
	}
	res.Generated = int(tx.RowsAffected)
	// race dengan writer lain → insert yang kalah conflict tetap dihitung skip
	res.Skipped += len(rows) - res.Generated
	return res, nil
}

// buildSessionRows: susun baris sesi dari period hari itu. Period yang
// sudah punya sesi di tanggal tsb (has) dilewati dan dihitung skip.
func buildSessionRows(
	branchID uuid.UUID,
	day time.Time,
	pr []periodRow,
	has map[uuid.UUID]bool,
	loc *time.Location,
) ([]sessModel.AttendanceSessionModel, int) {
	rows := make([]sessModel.AttendanceSessionModel, 0, len(pr))
	skipped := 0
	for _, p := range pr {
		if has[p.ID] {
			skipped++
			continue
		}
		pid := p.ID
		row := sessModel.AttendanceSessionModel{
			AttendanceSessionBranchID:          branchID,
			AttendanceSessionPeriodID:          &pid,
			AttendanceSessionSectionID:         p.SectionID,
			AttendanceSessionSubjectID:         p.SubjectID,
			AttendanceSessionDate:              day,
			AttendanceSessionAssignedTeacherID: p.TeacherID,
			AttendanceSessionStatus:            sessModel.SessionStatusScheduled,
			AttendanceSessionContextSnapshot:   buildContextSnapshot(p),
		}
		if st, err := CombineDateAndTOD(day, p.StartStr, loc); err == nil {
			row.AttendanceSessionStartsAt = &st
		}
		if et, err := CombineDateAndTOD(day, p.EndStr, loc); err == nil {
			if row.AttendanceSessionStartsAt != nil && et.Before(*row.AttendanceSessionStartsAt) {
				et = et.Add(24 * time.Hour)
			}
			row.AttendanceSessionEndsAt = &et
		}
		rows = append(rows, row)
	}
	return rows, skipped
}

func buildContextSnapshot(p periodRow) datatypes.JSONMap {
	out := datatypes.JSONMap{
		"period_id": p.ID.String(),
	}
	if p.SectionName != nil && strings.TrimSpace(*p.SectionName) != "" {
		out["section_name"] = strings.TrimSpace(*p.SectionName)
	}
	if p.SubjectName != nil && strings.TrimSpace(*p.SubjectName) != "" {
		out["subject_name"] = strings.TrimSpace(*p.SubjectName)
	}
	if p.TeacherName != nil && strings.TrimSpace(*p.TeacherName) != "" {
		out["teacher_name"] = strings.TrimSpace(*p.TeacherName)
	}
	if p.Room != nil && strings.TrimSpace(*p.Room) != "" {
		out["room"] = strings.TrimSpace(*p.Room)
	}
	return out
}

/* =========================
   Helpers (waktu)
========================= */

// ISO: 1=Senin .. 7=Ahad
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func ParseTODString(s string) (time.Time, error) {
	if t, err := time.Parse("15:04:05", s); err == nil {
		return time.Date(2000, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(2000, 1, 1, t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

func CombineDateAndTOD(day time.Time, tod string, loc *time.Location) (time.Time, error) {
	t, err := ParseTODString(tod)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc).In(time.UTC), nil
}

// PeriodCoversDate: rentang berlaku period mencakup tanggal (inklusif)
func PeriodCoversDate(p ttModel.TimetablePeriodModel, day time.Time) bool {
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	from := p.TimetablePeriodActiveFrom
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	if d.Before(from) {
		return false
	}
	if p.TimetablePeriodActiveTo != nil {
		to := *p.TimetablePeriodActiveTo
		to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
		if d.After(to) {
			return false
		}
	}
	return true
}

// TODWithin: apakah jam "HH:MM[:SS]" berada di [start, end)
func TODWithin(now, start, end string) bool {
	n, err := ParseTODString(now)
	if err != nil {
		return false
	}
	s, err := ParseTODString(start)
	if err != nil {
		return false
	}
	e, err := ParseTODString(end)
	if err != nil {
		return false
	}
	return !n.Before(s) && n.Before(e)
}
