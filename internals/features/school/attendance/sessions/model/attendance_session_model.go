package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   Enums (selaras dgn DB)
========================= */

type SessionStatus string

const (
	SessionStatusScheduled  SessionStatus = "scheduled"
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
)

/* =========================================
   Model: attendance_sessions
   Satu kejadian konkret dari timetable period pada satu tanggal.
   Maks. satu sesi per (period, date).
========================================= */

type AttendanceSessionModel struct {
	// PK
	AttendanceSessionID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_session_id" json:"attendance_session_id"`

	// Tenant & relasi utama
	AttendanceSessionBranchID uuid.UUID  `gorm:"type:uuid;not null;column:attendance_session_branch_id;index:idx_attendance_sessions_branch_date,priority:1" json:"attendance_session_branch_id"`
	AttendanceSessionPeriodID *uuid.UUID `gorm:"type:uuid;column:attendance_session_period_id;uniqueIndex:uq_attendance_sessions_period_date,priority:1" json:"attendance_session_period_id,omitempty"`

	AttendanceSessionSectionID uuid.UUID  `gorm:"type:uuid;not null;column:attendance_session_section_id" json:"attendance_session_section_id"`
	AttendanceSessionSubjectID *uuid.UUID `gorm:"type:uuid;column:attendance_session_subject_id" json:"attendance_session_subject_id,omitempty"`

	// Occurrence
	AttendanceSessionDate     time.Time  `gorm:"type:date;not null;column:attendance_session_date;uniqueIndex:uq_attendance_sessions_period_date,priority:2;index:idx_attendance_sessions_branch_date,priority:2" json:"attendance_session_date"`
	AttendanceSessionStartsAt *time.Time `gorm:"type:timestamptz;column:attendance_session_starts_at" json:"attendance_session_starts_at,omitempty"`
	AttendanceSessionEndsAt   *time.Time `gorm:"type:timestamptz;column:attendance_session_ends_at" json:"attendance_session_ends_at,omitempty"`

	// Guru: yang dijadwalkan vs yang benar-benar mengajar (substitusi)
	AttendanceSessionAssignedTeacherID *uuid.UUID `gorm:"type:uuid;column:attendance_session_assigned_teacher_id;index:idx_attendance_sessions_assigned_teacher" json:"attendance_session_assigned_teacher_id,omitempty"`
	AttendanceSessionActualTeacherID   *uuid.UUID `gorm:"type:uuid;column:attendance_session_actual_teacher_id;index:idx_attendance_sessions_actual_teacher" json:"attendance_session_actual_teacher_id,omitempty"`

	// Lifecycle: scheduled → in_progress → completed
	AttendanceSessionStatus   SessionStatus `gorm:"type:varchar(16);not null;default:'scheduled';column:attendance_session_status" json:"attendance_session_status"`
	AttendanceSessionLockedAt *time.Time    `gorm:"type:timestamptz;column:attendance_session_locked_at" json:"attendance_session_locked_at,omitempty"`

	// Info
	AttendanceSessionTitle *string `gorm:"type:text;column:attendance_session_title" json:"attendance_session_title,omitempty"`

	// Snapshot konteks (nama section/subject/guru) — JSONB, diisi saat generate
	AttendanceSessionContextSnapshot datatypes.JSONMap `gorm:"type:jsonb;column:attendance_session_context_snapshot" json:"attendance_session_context_snapshot,omitempty"`

	// Audit
	AttendanceSessionCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:attendance_session_created_at" json:"attendance_session_created_at"`
	AttendanceSessionUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:attendance_session_updated_at" json:"attendance_session_updated_at"`
	AttendanceSessionDeletedAt gorm.DeletedAt `gorm:"column:attendance_session_deleted_at;index" json:"attendance_session_deleted_at,omitempty"`
}

func (AttendanceSessionModel) TableName() string { return "attendance_sessions" }

func (m *AttendanceSessionModel) IsLocked() bool {
	return m.AttendanceSessionLockedAt != nil || m.AttendanceSessionStatus == SessionStatusCompleted
}
