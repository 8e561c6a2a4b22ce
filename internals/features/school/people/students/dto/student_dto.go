package dto

import (
	"time"

	model "sekolahku_backend/internals/features/school/people/students/model"

	"github.com/google/uuid"
)

type CreateStudentRequest struct {
	StudentCode       *string `json:"student_code" validate:"omitempty,max=32"`
	StudentName       string  `json:"student_name" validate:"required,max=120"`
	StudentRollNumber *int    `json:"student_roll_number" validate:"omitempty,gte=1"`
}

func (r *CreateStudentRequest) ToModel(branchID uuid.UUID) *model.StudentModel {
	return &model.StudentModel{
		StudentBranchID:   branchID,
		StudentCode:       r.StudentCode,
		StudentName:       r.StudentName,
		StudentRollNumber: r.StudentRollNumber,
		StudentIsActive:   true,
	}
}

type UpdateStudentRequest struct {
	StudentCode       *string `json:"student_code" validate:"omitempty,max=32"`
	StudentName       *string `json:"student_name" validate:"omitempty,max=120"`
	StudentRollNumber *int    `json:"student_roll_number" validate:"omitempty,gte=1"`
	StudentIsActive   *bool   `json:"student_is_active" validate:"omitempty"`
}

type StudentResponse struct {
	StudentID         uuid.UUID `json:"student_id"`
	StudentBranchID   uuid.UUID `json:"student_branch_id"`
	StudentCode       *string   `json:"student_code,omitempty"`
	StudentName       string    `json:"student_name"`
	StudentRollNumber *int      `json:"student_roll_number,omitempty"`
	StudentIsActive   bool      `json:"student_is_active"`
	StudentCreatedAt  time.Time `json:"student_created_at"`
	StudentUpdatedAt  time.Time `json:"student_updated_at"`
}

func FromStudentModel(m model.StudentModel) StudentResponse {
	return StudentResponse{
		StudentID:         m.StudentID,
		StudentBranchID:   m.StudentBranchID,
		StudentCode:       m.StudentCode,
		StudentName:       m.StudentName,
		StudentRollNumber: m.StudentRollNumber,
		StudentIsActive:   m.StudentIsActive,
		StudentCreatedAt:  m.StudentCreatedAt,
		StudentUpdatedAt:  m.StudentUpdatedAt,
	}
}

func FromStudentModels(ms []model.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromStudentModel(m))
	}
	return out
}
