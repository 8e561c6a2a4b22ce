package dto

import (
	"time"

	model "sekolahku_backend/internals/features/school/classes/sections/model"

	"github.com/google/uuid"
)

/* ===================== REQUESTS ===================== */

type CreateClassSectionRequest struct {
	ClassSectionName      string     `json:"class_section_name" validate:"required,max=120"`
	ClassSectionTeacherID *uuid.UUID `json:"class_section_teacher_id" validate:"omitempty"`
}

type UpdateClassSectionRequest struct {
	ClassSectionName      *string    `json:"class_section_name" validate:"omitempty,max=120"`
	ClassSectionTeacherID *uuid.UUID `json:"class_section_teacher_id" validate:"omitempty"`
	ClassSectionIsActive  *bool      `json:"class_section_is_active" validate:"omitempty"`
}

// Enrollment siswa ke section
type EnrollStudentRequest struct {
	ClassSectionStudentStudentID uuid.UUID `json:"class_section_student_student_id" validate:"required"`
	ClassSectionStudentJoinedAt  *string   `json:"class_section_student_joined_at" validate:"omitempty,datetime=2006-01-02"`
}

/* ===================== RESPONSES ===================== */

type ClassSectionResponse struct {
	ClassSectionID        uuid.UUID  `json:"class_section_id"`
	ClassSectionBranchID  uuid.UUID  `json:"class_section_branch_id"`
	ClassSectionName      string     `json:"class_section_name"`
	ClassSectionTeacherID *uuid.UUID `json:"class_section_teacher_id,omitempty"`
	ClassSectionIsActive  bool       `json:"class_section_is_active"`
	ClassSectionCreatedAt time.Time  `json:"class_section_created_at"`
	ClassSectionUpdatedAt time.Time  `json:"class_section_updated_at"`
}

func FromClassSectionModel(m model.ClassSectionModel) ClassSectionResponse {
	return ClassSectionResponse{
		ClassSectionID:        m.ClassSectionID,
		ClassSectionBranchID:  m.ClassSectionBranchID,
		ClassSectionName:      m.ClassSectionName,
		ClassSectionTeacherID: m.ClassSectionTeacherID,
		ClassSectionIsActive:  m.ClassSectionIsActive,
		ClassSectionCreatedAt: m.ClassSectionCreatedAt,
		ClassSectionUpdatedAt: m.ClassSectionUpdatedAt,
	}
}

func FromClassSectionModels(ms []model.ClassSectionModel) []ClassSectionResponse {
	out := make([]ClassSectionResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromClassSectionModel(m))
	}
	return out
}

type EnrollmentResponse struct {
	ClassSectionStudentID        uuid.UUID  `json:"class_section_student_id"`
	ClassSectionStudentSectionID uuid.UUID  `json:"class_section_student_section_id"`
	ClassSectionStudentStudentID uuid.UUID  `json:"class_section_student_student_id"`
	ClassSectionStudentIsActive  bool       `json:"class_section_student_is_active"`
	ClassSectionStudentJoinedAt  *time.Time `json:"class_section_student_joined_at,omitempty"`
}

func FromEnrollmentModel(m model.ClassSectionStudentModel) EnrollmentResponse {
	return EnrollmentResponse{
		ClassSectionStudentID:        m.ClassSectionStudentID,
		ClassSectionStudentSectionID: m.ClassSectionStudentSectionID,
		ClassSectionStudentStudentID: m.ClassSectionStudentStudentID,
		ClassSectionStudentIsActive:  m.ClassSectionStudentIsActive,
		ClassSectionStudentJoinedAt:  m.ClassSectionStudentJoinedAt,
	}
}
