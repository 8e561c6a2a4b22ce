package dto

import (
	"time"

	model "sekolahku_backend/internals/features/school/attendance/student_attendance/model"

	"github.com/google/uuid"
)

/* ===================== REQUESTS ===================== */

type CreateStudentPeriodAttendanceRequest struct {
	StudentPeriodAttendanceSessionID uuid.UUID `json:"student_period_attendance_session_id" validate:"required"`
	StudentPeriodAttendanceStudentID uuid.UUID `json:"student_period_attendance_student_id" validate:"required"`

	StudentPeriodAttendanceStatus model.AttendanceStatus `json:"student_period_attendance_status" validate:"required,oneof=present absent late excused medical suspended activity"`

	StudentPeriodAttendanceMinutesLate *int    `json:"student_period_attendance_minutes_late" validate:"omitempty,gte=0,lte=480"`
	StudentPeriodAttendanceReason      *string `json:"student_period_attendance_reason" validate:"omitempty"`
	StudentPeriodAttendanceNotes       *string `json:"student_period_attendance_notes" validate:"omitempty"`

	StudentPeriodAttendanceMarkedByTeacherID *uuid.UUID `json:"student_period_attendance_marked_by_teacher_id" validate:"omitempty"`
}

func (r *CreateStudentPeriodAttendanceRequest) ToModel(branchID uuid.UUID) *model.StudentPeriodAttendanceModel {
	now := time.Now()
	return &model.StudentPeriodAttendanceModel{
		StudentPeriodAttendanceBranchID:          branchID,
		StudentPeriodAttendanceSessionID:         r.StudentPeriodAttendanceSessionID,
		StudentPeriodAttendanceStudentID:         r.StudentPeriodAttendanceStudentID,
		StudentPeriodAttendanceStatus:            r.StudentPeriodAttendanceStatus,
		StudentPeriodAttendanceMinutesLate:       r.StudentPeriodAttendanceMinutesLate,
		StudentPeriodAttendanceReason:            r.StudentPeriodAttendanceReason,
		StudentPeriodAttendanceNotes:             r.StudentPeriodAttendanceNotes,
		StudentPeriodAttendanceMarkedAt:          &now,
		StudentPeriodAttendanceMarkedByTeacherID: r.StudentPeriodAttendanceMarkedByTeacherID,
	}
}

// Update (partial, semua optional)
type UpdateStudentPeriodAttendanceRequest struct {
	StudentPeriodAttendanceStatus *model.AttendanceStatus `json:"student_period_attendance_status" validate:"omitempty,oneof=present absent late excused medical suspended activity"`

	StudentPeriodAttendanceMinutesLate *int    `json:"student_period_attendance_minutes_late" validate:"omitempty,gte=0,lte=480"`
	StudentPeriodAttendanceReason      *string `json:"student_period_attendance_reason" validate:"omitempty"`
	StudentPeriodAttendanceNotes       *string `json:"student_period_attendance_notes" validate:"omitempty"`
}

/* ===================== RESPONSES ===================== */

type StudentPeriodAttendanceResponse struct {
	StudentPeriodAttendanceID       uuid.UUID `json:"student_period_attendance_id"`
	StudentPeriodAttendanceBranchID uuid.UUID `json:"student_period_attendance_branch_id"`

	StudentPeriodAttendanceSessionID uuid.UUID `json:"student_period_attendance_session_id"`
	StudentPeriodAttendanceStudentID uuid.UUID `json:"student_period_attendance_student_id"`

	StudentPeriodAttendanceStatus model.AttendanceStatus `json:"student_period_attendance_status"`

	StudentPeriodAttendanceMinutesLate *int    `json:"student_period_attendance_minutes_late,omitempty"`
	StudentPeriodAttendanceReason      *string `json:"student_period_attendance_reason,omitempty"`
	StudentPeriodAttendanceNotes       *string `json:"student_period_attendance_notes,omitempty"`

	StudentPeriodAttendanceMarkedAt          *time.Time `json:"student_period_attendance_marked_at,omitempty"`
	StudentPeriodAttendanceMarkedByTeacherID *uuid.UUID `json:"student_period_attendance_marked_by_teacher_id,omitempty"`

	StudentPeriodAttendanceCreatedAt time.Time `json:"student_period_attendance_created_at"`
	StudentPeriodAttendanceUpdatedAt time.Time `json:"student_period_attendance_updated_at"`
}

func FromStudentPeriodAttendanceModel(m model.StudentPeriodAttendanceModel) StudentPeriodAttendanceResponse {
	return StudentPeriodAttendanceResponse{
		StudentPeriodAttendanceID:                m.StudentPeriodAttendanceID,
		StudentPeriodAttendanceBranchID:          m.StudentPeriodAttendanceBranchID,
		StudentPeriodAttendanceSessionID:         m.StudentPeriodAttendanceSessionID,
		StudentPeriodAttendanceStudentID:         m.StudentPeriodAttendanceStudentID,
		StudentPeriodAttendanceStatus:            m.StudentPeriodAttendanceStatus,
		StudentPeriodAttendanceMinutesLate:       m.StudentPeriodAttendanceMinutesLate,
		StudentPeriodAttendanceReason:            m.StudentPeriodAttendanceReason,
		StudentPeriodAttendanceNotes:             m.StudentPeriodAttendanceNotes,
		StudentPeriodAttendanceMarkedAt:          m.StudentPeriodAttendanceMarkedAt,
		StudentPeriodAttendanceMarkedByTeacherID: m.StudentPeriodAttendanceMarkedByTeacherID,
		StudentPeriodAttendanceCreatedAt:         m.StudentPeriodAttendanceCreatedAt,
		StudentPeriodAttendanceUpdatedAt:         m.StudentPeriodAttendanceUpdatedAt,
	}
}

func FromStudentPeriodAttendanceModels(ms []model.StudentPeriodAttendanceModel) []StudentPeriodAttendanceResponse {
	out := make([]StudentPeriodAttendanceResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromStudentPeriodAttendanceModel(m))
	}
	return out
}

/* ===================== REPORT SHAPES ===================== */

type StatusCounts struct {
	Present   int `json:"present"`
	Absent    int `json:"absent"`
	Late      int `json:"late"`
	Excused   int `json:"excused"`
	Medical   int `json:"medical"`
	Suspended int `json:"suspended"`
	Activity  int `json:"activity"`
	Total     int `json:"total"`
}

type SubjectCount struct {
	SubjectID   *uuid.UUID `json:"subject_id,omitempty"`
	SubjectName *string    `json:"subject_name,omitempty"`
	Counts      StatusCounts `json:"counts"`
}

type StudentSummaryResponse struct {
	StudentID      uuid.UUID      `json:"student_id"`
	DateFrom       *string        `json:"date_from,omitempty"`
	DateTo         *string        `json:"date_to,omitempty"`
	Counts         StatusCounts   `json:"counts"`
	BySubject      []SubjectCount `json:"by_subject"`
	AttendanceRate float64        `json:"attendance_rate"` // (present+late)/total*100, 2 desimal
}

type SessionReportResponse struct {
	Session any          `json:"session"`
	Rows    any          `json:"rows"`
	Counts  StatusCounts `json:"counts"`
}

type DashboardStatsResponse struct {
	DateFrom       string       `json:"date_from"`
	DateTo         string       `json:"date_to"`
	Counts         StatusCounts `json:"counts"`
	AttendanceRate float64      `json:"attendance_rate"`
}

// Rekap per mapel lintas siswa (laporan subject-wise)
type SubjectWiseRow struct {
	SubjectID      *uuid.UUID   `json:"subject_id,omitempty"`
	SubjectName    *string      `json:"subject_name,omitempty"`
	Counts         StatusCounts `json:"counts"`
	AttendanceRate float64      `json:"attendance_rate"`
}

type StudentPatternRow struct {
	StudentID uuid.UUID `json:"student_id"`
	Statuses  []string  `json:"statuses"` // urut per tanggal sesi
	Total     int       `json:"total"`
	Absences  int       `json:"absences"`
}
