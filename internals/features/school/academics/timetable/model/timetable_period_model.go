package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Model: timetable_periods
   Slot jadwal berulang (section + subject + teacher + room + hari + jam).
   Dari sisi subsistem absensi ini read-only: hanya sumber untuk
   menurunkan sesi per tanggal.
========================= */

type TimetablePeriodModel struct {
	TimetablePeriodID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:timetable_period_id" json:"timetable_period_id"`
	TimetablePeriodBranchID uuid.UUID `gorm:"type:uuid;not null;column:timetable_period_branch_id;index:idx_timetable_periods_branch" json:"timetable_period_branch_id"`

	TimetablePeriodSectionID uuid.UUID  `gorm:"type:uuid;not null;column:timetable_period_section_id" json:"timetable_period_section_id"`
	TimetablePeriodSubjectID *uuid.UUID `gorm:"type:uuid;column:timetable_period_subject_id" json:"timetable_period_subject_id,omitempty"`
	TimetablePeriodTeacherID *uuid.UUID `gorm:"type:uuid;column:timetable_period_teacher_id;index:idx_timetable_periods_teacher" json:"timetable_period_teacher_id,omitempty"`

	TimetablePeriodRoom *string `gorm:"type:text;column:timetable_period_room" json:"timetable_period_room,omitempty"`

	// ISO: 1=Senin .. 7=Ahad
	TimetablePeriodDayOfWeek int    `gorm:"not null;column:timetable_period_day_of_week" json:"timetable_period_day_of_week"`
	TimetablePeriodStartTime string `gorm:"type:time;not null;column:timetable_period_start_time" json:"timetable_period_start_time"` // "HH:MM:SS"
	TimetablePeriodEndTime   string `gorm:"type:time;not null;column:timetable_period_end_time" json:"timetable_period_end_time"`

	// rentang berlaku (to boleh kosong = masih berlaku)
	TimetablePeriodActiveFrom time.Time  `gorm:"type:date;not null;column:timetable_period_active_from" json:"timetable_period_active_from"`
	TimetablePeriodActiveTo   *time.Time `gorm:"type:date;column:timetable_period_active_to" json:"timetable_period_active_to,omitempty"`

	TimetablePeriodIsBreak  bool `gorm:"not null;default:false;column:timetable_period_is_break" json:"timetable_period_is_break"`
	TimetablePeriodIsActive bool `gorm:"not null;default:true;column:timetable_period_is_active" json:"timetable_period_is_active"`

	TimetablePeriodCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:timetable_period_created_at" json:"timetable_period_created_at"`
	TimetablePeriodUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:timetable_period_updated_at" json:"timetable_period_updated_at"`
	TimetablePeriodDeletedAt gorm.DeletedAt `gorm:"column:timetable_period_deleted_at;index" json:"timetable_period_deleted_at,omitempty"`
}

func (TimetablePeriodModel) TableName() string { return "timetable_periods" }
