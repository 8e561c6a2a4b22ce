package dto

import (
	"time"

	model "sekolahku_backend/internals/features/school/attendance/sessions/model"
	spaModel "sekolahku_backend/internals/features/school/attendance/student_attendance/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* ===================== REQUESTS ===================== */

// Create (sesi ad hoc, di luar timetable)
type CreateAttendanceSessionRequest struct {
	AttendanceSessionBranchID  uuid.UUID  `json:"attendance_session_branch_id" validate:"omitempty"`
	AttendanceSessionSectionID uuid.UUID  `json:"attendance_session_section_id" validate:"required"`
	AttendanceSessionSubjectID *uuid.UUID `json:"attendance_session_subject_id" validate:"omitempty"`
	AttendanceSessionPeriodID  *uuid.UUID `json:"attendance_session_period_id" validate:"omitempty"`

	AttendanceSessionDate time.Time `json:"attendance_session_date" validate:"required"`

	AttendanceSessionAssignedTeacherID *uuid.UUID `json:"attendance_session_assigned_teacher_id" validate:"omitempty"`
	AttendanceSessionTitle             *string    `json:"attendance_session_title" validate:"omitempty"`
}

func (r *CreateAttendanceSessionRequest) ToModel() *model.AttendanceSessionModel {
	d := r.AttendanceSessionDate
	return &model.AttendanceSessionModel{
		AttendanceSessionBranchID:          r.AttendanceSessionBranchID,
		AttendanceSessionSectionID:         r.AttendanceSessionSectionID,
		AttendanceSessionSubjectID:         r.AttendanceSessionSubjectID,
		AttendanceSessionPeriodID:          r.AttendanceSessionPeriodID,
		AttendanceSessionDate:              time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
		AttendanceSessionAssignedTeacherID: r.AttendanceSessionAssignedTeacherID,
		AttendanceSessionTitle:             r.AttendanceSessionTitle,
		AttendanceSessionStatus:            model.SessionStatusScheduled,
	}
}

// Satu item marking di bulk mark
type MarkingItem struct {
	StudentID   uuid.UUID                 `json:"student_id" validate:"required"`
	Status      spaModel.AttendanceStatus `json:"status" validate:"required,oneof=present absent late excused medical suspended activity"`
	MinutesLate *int                      `json:"minutes_late" validate:"omitempty,gte=0,lte=480"`
	Reason      *string                   `json:"reason" validate:"omitempty"`
	Notes       *string                   `json:"notes" validate:"omitempty"`
}

// POST /attendance/sessions/:id/mark
type BulkMarkRequest struct {
	Markings  []MarkingItem `json:"markings" validate:"required,min=1,dive"`
	TeacherID *uuid.UUID    `json:"teacher_id" validate:"omitempty"`
}

// PATCH /attendance/sessions/:id/students/:student_id
type MarkSingleStudentRequest struct {
	Status      spaModel.AttendanceStatus `json:"status" validate:"required,oneof=present absent late excused medical suspended activity"`
	MinutesLate *int                      `json:"minutes_late" validate:"omitempty,gte=0,lte=480"`
	Reason      *string                   `json:"reason" validate:"omitempty"`
	Notes       *string                   `json:"notes" validate:"omitempty"`
	TeacherID   *uuid.UUID                `json:"teacher_id" validate:"omitempty"`
}

// POST /attendance/sessions/generate-from-timetable
type GenerateFromTimetableRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// POST /attendance/sessions/:id/generate-dummy-data
type GenerateDummyDataRequest struct {
	PresentPercentage float64 `json:"present_percentage" validate:"gte=0,lte=100"`
}

/* ===================== RESPONSES ===================== */

type AttendanceSessionResponse struct {
	AttendanceSessionID       uuid.UUID  `json:"attendance_session_id"`
	AttendanceSessionBranchID uuid.UUID  `json:"attendance_session_branch_id"`
	AttendanceSessionPeriodID *uuid.UUID `json:"attendance_session_period_id,omitempty"`

	AttendanceSessionSectionID uuid.UUID  `json:"attendance_session_section_id"`
	AttendanceSessionSubjectID *uuid.UUID `json:"attendance_session_subject_id,omitempty"`

	AttendanceSessionDate     time.Time  `json:"attendance_session_date"`
	AttendanceSessionStartsAt *time.Time `json:"attendance_session_starts_at,omitempty"`
	AttendanceSessionEndsAt   *time.Time `json:"attendance_session_ends_at,omitempty"`

	AttendanceSessionAssignedTeacherID *uuid.UUID `json:"attendance_session_assigned_teacher_id,omitempty"`
	AttendanceSessionActualTeacherID   *uuid.UUID `json:"attendance_session_actual_teacher_id,omitempty"`

	AttendanceSessionStatus   model.SessionStatus `json:"attendance_session_status"`
	AttendanceSessionLockedAt *time.Time          `json:"attendance_session_locked_at,omitempty"`

	AttendanceSessionTitle           *string           `json:"attendance_session_title,omitempty"`
	AttendanceSessionContextSnapshot datatypes.JSONMap `json:"attendance_session_context_snapshot,omitempty"`

	AttendanceSessionCreatedAt time.Time `json:"attendance_session_created_at"`
	AttendanceSessionUpdatedAt time.Time `json:"attendance_session_updated_at"`
}

func FromAttendanceSessionModel(m model.AttendanceSessionModel) AttendanceSessionResponse {
	return AttendanceSessionResponse{
		AttendanceSessionID:                m.AttendanceSessionID,
		AttendanceSessionBranchID:          m.AttendanceSessionBranchID,
		AttendanceSessionPeriodID:          m.AttendanceSessionPeriodID,
		AttendanceSessionSectionID:         m.AttendanceSessionSectionID,
		AttendanceSessionSubjectID:         m.AttendanceSessionSubjectID,
		AttendanceSessionDate:              m.AttendanceSessionDate,
		AttendanceSessionStartsAt:          m.AttendanceSessionStartsAt,
		AttendanceSessionEndsAt:            m.AttendanceSessionEndsAt,
		AttendanceSessionAssignedTeacherID: m.AttendanceSessionAssignedTeacherID,
		AttendanceSessionActualTeacherID:   m.AttendanceSessionActualTeacherID,
		AttendanceSessionStatus:            m.AttendanceSessionStatus,
		AttendanceSessionLockedAt:          m.AttendanceSessionLockedAt,
		AttendanceSessionTitle:             m.AttendanceSessionTitle,
		AttendanceSessionContextSnapshot:   m.AttendanceSessionContextSnapshot,
		AttendanceSessionCreatedAt:         m.AttendanceSessionCreatedAt,
		AttendanceSessionUpdatedAt:         m.AttendanceSessionUpdatedAt,
	}
}

func FromAttendanceSessionModels(ms []model.AttendanceSessionModel) []AttendanceSessionResponse {
	out := make([]AttendanceSessionResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromAttendanceSessionModel(m))
	}
	return out
}

// Satu baris roster: siswa ter-enroll + status marking saat ini
// (status nil = belum ditandai).
type RosterEntryResponse struct {
	StudentID         uuid.UUID                  `json:"student_id"`
	StudentName       string                     `json:"student_name"`
	StudentRollNumber *int                       `json:"student_roll_number,omitempty"`
	Status            *spaModel.AttendanceStatus `json:"status"`
	MinutesLate       *int                       `json:"minutes_late,omitempty"`
	Reason            *string                    `json:"reason,omitempty"`
	Notes             *string                    `json:"notes,omitempty"`
	MarkedAt          *time.Time                 `json:"marked_at,omitempty"`
}

type GenerateFromTimetableResponse struct {
	Date      string `json:"date"`
	Generated int    `json:"generated"`
	Skipped   int    `json:"skipped"`
	Message   string `json:"message"`
}
