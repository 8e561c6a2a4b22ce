package model

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment siswa per section. Roster sesi dibaca dari baris aktif saja.
type ClassSectionStudentModel struct {
	ClassSectionStudentID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_section_student_id" json:"class_section_student_id"`
	ClassSectionStudentBranchID uuid.UUID `gorm:"type:uuid;not null;column:class_section_student_branch_id" json:"class_section_student_branch_id"`

	ClassSectionStudentSectionID uuid.UUID `gorm:"type:uuid;not null;column:class_section_student_section_id;uniqueIndex:uq_section_students,priority:1;index:idx_section_students_section" json:"class_section_student_section_id"`
	ClassSectionStudentStudentID uuid.UUID `gorm:"type:uuid;not null;column:class_section_student_student_id;uniqueIndex:uq_section_students,priority:2" json:"class_section_student_student_id"`

	ClassSectionStudentIsActive bool       `gorm:"not null;default:true;column:class_section_student_is_active" json:"class_section_student_is_active"`
	ClassSectionStudentJoinedAt *time.Time `gorm:"type:date;column:class_section_student_joined_at" json:"class_section_student_joined_at,omitempty"`

	ClassSectionStudentCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:class_section_student_created_at" json:"class_section_student_created_at"`
	ClassSectionStudentUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:class_section_student_updated_at" json:"class_section_student_updated_at"`
}

func (ClassSectionStudentModel) TableName() string { return "class_section_students" }
