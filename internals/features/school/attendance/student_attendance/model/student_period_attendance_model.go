package model

import (
	"time"

	"github.com/google/uuid"
)

/* =========================
   Enum status kehadiran (kanonik, dipakai semua DTO)
========================= */

type AttendanceStatus string

const (
	AttendancePresent   AttendanceStatus = "present"
	AttendanceAbsent    AttendanceStatus = "absent"
	AttendanceLate      AttendanceStatus = "late"
	AttendanceExcused   AttendanceStatus = "excused"
	AttendanceMedical   AttendanceStatus = "medical"
	AttendanceSuspended AttendanceStatus = "suspended"
	AttendanceActivity  AttendanceStatus = "activity"
)

func ValidAttendanceStatus(s AttendanceStatus) bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused,
		AttendanceMedical, AttendanceSuspended, AttendanceActivity:
		return true
	}
	return false
}

/* =========================================
   Model: student_period_attendances
   Fakta kehadiran per (session, student). Branch id didenormalisasi
   saat tulis supaya query per-tenant tidak wajib join lewat sesi.
========================================= */

type StudentPeriodAttendanceModel struct {
	StudentPeriodAttendanceID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_period_attendance_id" json:"student_period_attendance_id"`
	StudentPeriodAttendanceBranchID uuid.UUID `gorm:"type:uuid;not null;column:student_period_attendance_branch_id;index:idx_spa_branch" json:"student_period_attendance_branch_id"`

	StudentPeriodAttendanceSessionID uuid.UUID `gorm:"type:uuid;not null;column:student_period_attendance_session_id;uniqueIndex:uq_spa_session_student,priority:1;index:idx_spa_session_status,priority:1" json:"student_period_attendance_session_id"`
	StudentPeriodAttendanceStudentID uuid.UUID `gorm:"type:uuid;not null;column:student_period_attendance_student_id;uniqueIndex:uq_spa_session_student,priority:2;index:idx_spa_student" json:"student_period_attendance_student_id"`

	StudentPeriodAttendanceStatus AttendanceStatus `gorm:"type:varchar(16);not null;column:student_period_attendance_status;index:idx_spa_session_status,priority:2" json:"student_period_attendance_status"`

	// hanya bermakna saat status=late
	StudentPeriodAttendanceMinutesLate *int `gorm:"column:student_period_attendance_minutes_late" json:"student_period_attendance_minutes_late,omitempty"`

	StudentPeriodAttendanceReason *string `gorm:"type:text;column:student_period_attendance_reason" json:"student_period_attendance_reason,omitempty"`
	StudentPeriodAttendanceNotes  *string `gorm:"type:text;column:student_period_attendance_notes" json:"student_period_attendance_notes,omitempty"`

	StudentPeriodAttendanceMarkedAt          *time.Time `gorm:"type:timestamptz;column:student_period_attendance_marked_at" json:"student_period_attendance_marked_at,omitempty"`
	StudentPeriodAttendanceMarkedByTeacherID *uuid.UUID `gorm:"type:uuid;column:student_period_attendance_marked_by_teacher_id" json:"student_period_attendance_marked_by_teacher_id,omitempty"`

	StudentPeriodAttendanceCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:student_period_attendance_created_at" json:"student_period_attendance_created_at"`
	StudentPeriodAttendanceUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:student_period_attendance_updated_at" json:"student_period_attendance_updated_at"`
}

func (StudentPeriodAttendanceModel) TableName() string { return "student_period_attendances" }
