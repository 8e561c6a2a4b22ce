package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentModel struct {
	StudentID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_id" json:"student_id"`
	StudentBranchID uuid.UUID `gorm:"type:uuid;not null;column:student_branch_id;index:idx_students_branch;uniqueIndex:uq_students_branch_code,priority:1" json:"student_branch_id"`

	StudentCode       *string `gorm:"type:varchar(32);column:student_code;uniqueIndex:uq_students_branch_code,priority:2" json:"student_code,omitempty"`
	StudentName       string  `gorm:"type:text;not null;column:student_name" json:"student_name"`
	StudentRollNumber *int    `gorm:"column:student_roll_number" json:"student_roll_number,omitempty"`

	StudentIsActive bool `gorm:"not null;default:true;column:student_is_active" json:"student_is_active"`

	StudentCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:student_created_at" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:student_updated_at" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`
}

func (StudentModel) TableName() string { return "students" }
