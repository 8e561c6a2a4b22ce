package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassSectionModel struct {
	ClassSectionID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_section_id" json:"class_section_id"`
	ClassSectionBranchID uuid.UUID `gorm:"type:uuid;not null;column:class_section_branch_id;index:idx_class_sections_branch" json:"class_section_branch_id"`

	ClassSectionName string `gorm:"type:text;not null;column:class_section_name" json:"class_section_name"`

	// wali kelas (opsional)
	ClassSectionTeacherID *uuid.UUID `gorm:"type:uuid;column:class_section_teacher_id" json:"class_section_teacher_id,omitempty"`

	ClassSectionIsActive bool `gorm:"not null;default:true;column:class_section_is_active" json:"class_section_is_active"`

	ClassSectionCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:class_section_created_at" json:"class_section_created_at"`
	ClassSectionUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:class_section_updated_at" json:"class_section_updated_at"`
	ClassSectionDeletedAt gorm.DeletedAt `gorm:"column:class_section_deleted_at;index" json:"class_section_deleted_at,omitempty"`
}

func (ClassSectionModel) TableName() string { return "class_sections" }
