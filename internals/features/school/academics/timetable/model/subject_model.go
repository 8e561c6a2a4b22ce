package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubjectModel struct {
	SubjectID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:subject_id" json:"subject_id"`
	SubjectBranchID uuid.UUID `gorm:"type:uuid;not null;column:subject_branch_id;index:idx_subjects_branch" json:"subject_branch_id"`

	SubjectCode *string `gorm:"type:varchar(32);column:subject_code" json:"subject_code,omitempty"`
	SubjectName string  `gorm:"type:text;not null;column:subject_name" json:"subject_name"`

	SubjectCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:subject_created_at" json:"subject_created_at"`
	SubjectUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:subject_updated_at" json:"subject_updated_at"`
	SubjectDeletedAt gorm.DeletedAt `gorm:"column:subject_deleted_at;index" json:"subject_deleted_at,omitempty"`
}

func (SubjectModel) TableName() string { return "subjects" }
