package dto

import (
	"time"

	model "sekolahku_backend/internals/features/school/academics/timetable/model"

	"github.com/google/uuid"
)

/* ===================== REQUESTS ===================== */

type CreateTimetablePeriodRequest struct {
	TimetablePeriodSectionID uuid.UUID  `json:"timetable_period_section_id" validate:"required"`
	TimetablePeriodSubjectID *uuid.UUID `json:"timetable_period_subject_id" validate:"omitempty"`
	TimetablePeriodTeacherID *uuid.UUID `json:"timetable_period_teacher_id" validate:"omitempty"`

	TimetablePeriodRoom *string `json:"timetable_period_room" validate:"omitempty,max=64"`

	TimetablePeriodDayOfWeek int    `json:"timetable_period_day_of_week" validate:"required,gte=1,lte=7"`
	TimetablePeriodStartTime string `json:"timetable_period_start_time" validate:"required"`
	TimetablePeriodEndTime   string `json:"timetable_period_end_time" validate:"required"`

	TimetablePeriodActiveFrom string  `json:"timetable_period_active_from" validate:"required,datetime=2006-01-02"`
	TimetablePeriodActiveTo   *string `json:"timetable_period_active_to" validate:"omitempty,datetime=2006-01-02"`

	TimetablePeriodIsBreak bool `json:"timetable_period_is_break"`
}

func (r *CreateTimetablePeriodRequest) ToModel(branchID uuid.UUID, start, end string, from time.Time, to *time.Time) *model.TimetablePeriodModel {
	return &model.TimetablePeriodModel{
		TimetablePeriodBranchID:   branchID,
		TimetablePeriodSectionID:  r.TimetablePeriodSectionID,
		TimetablePeriodSubjectID:  r.TimetablePeriodSubjectID,
		TimetablePeriodTeacherID:  r.TimetablePeriodTeacherID,
		TimetablePeriodRoom:       r.TimetablePeriodRoom,
		TimetablePeriodDayOfWeek:  r.TimetablePeriodDayOfWeek,
		TimetablePeriodStartTime:  start,
		TimetablePeriodEndTime:    end,
		TimetablePeriodActiveFrom: from,
		TimetablePeriodActiveTo:   to,
		TimetablePeriodIsBreak:    r.TimetablePeriodIsBreak,
		TimetablePeriodIsActive:   true,
	}
}

// Update (partial)
type UpdateTimetablePeriodRequest struct {
	TimetablePeriodSubjectID *uuid.UUID `json:"timetable_period_subject_id" validate:"omitempty"`
	TimetablePeriodTeacherID *uuid.UUID `json:"timetable_period_teacher_id" validate:"omitempty"`
	TimetablePeriodRoom      *string    `json:"timetable_period_room" validate:"omitempty,max=64"`

	TimetablePeriodDayOfWeek *int    `json:"timetable_period_day_of_week" validate:"omitempty,gte=1,lte=7"`
	TimetablePeriodStartTime *string `json:"timetable_period_start_time" validate:"omitempty"`
	TimetablePeriodEndTime   *string `json:"timetable_period_end_time" validate:"omitempty"`

	TimetablePeriodActiveTo *string `json:"timetable_period_active_to" validate:"omitempty,datetime=2006-01-02"`
	TimetablePeriodIsActive *bool   `json:"timetable_period_is_active" validate:"omitempty"`
}

/* ===================== RESPONSES ===================== */

type TimetablePeriodResponse struct {
	TimetablePeriodID       uuid.UUID `json:"timetable_period_id"`
	TimetablePeriodBranchID uuid.UUID `json:"timetable_period_branch_id"`

	TimetablePeriodSectionID uuid.UUID  `json:"timetable_period_section_id"`
	TimetablePeriodSubjectID *uuid.UUID `json:"timetable_period_subject_id,omitempty"`
	TimetablePeriodTeacherID *uuid.UUID `json:"timetable_period_teacher_id,omitempty"`

	TimetablePeriodRoom *string `json:"timetable_period_room,omitempty"`

	TimetablePeriodDayOfWeek int    `json:"timetable_period_day_of_week"`
	TimetablePeriodStartTime string `json:"timetable_period_start_time"`
	TimetablePeriodEndTime   string `json:"timetable_period_end_time"`

	TimetablePeriodActiveFrom time.Time  `json:"timetable_period_active_from"`
	TimetablePeriodActiveTo   *time.Time `json:"timetable_period_active_to,omitempty"`

	TimetablePeriodIsBreak  bool `json:"timetable_period_is_break"`
	TimetablePeriodIsActive bool `json:"timetable_period_is_active"`

	TimetablePeriodCreatedAt time.Time `json:"timetable_period_created_at"`
	TimetablePeriodUpdatedAt time.Time `json:"timetable_period_updated_at"`
}

func FromTimetablePeriodModel(m model.TimetablePeriodModel) TimetablePeriodResponse {
	return TimetablePeriodResponse{
		TimetablePeriodID:         m.TimetablePeriodID,
		TimetablePeriodBranchID:   m.TimetablePeriodBranchID,
		TimetablePeriodSectionID:  m.TimetablePeriodSectionID,
		TimetablePeriodSubjectID:  m.TimetablePeriodSubjectID,
		TimetablePeriodTeacherID:  m.TimetablePeriodTeacherID,
		TimetablePeriodRoom:       m.TimetablePeriodRoom,
		TimetablePeriodDayOfWeek:  m.TimetablePeriodDayOfWeek,
		TimetablePeriodStartTime:  m.TimetablePeriodStartTime,
		TimetablePeriodEndTime:    m.TimetablePeriodEndTime,
		TimetablePeriodActiveFrom: m.TimetablePeriodActiveFrom,
		TimetablePeriodActiveTo:   m.TimetablePeriodActiveTo,
		TimetablePeriodIsBreak:    m.TimetablePeriodIsBreak,
		TimetablePeriodIsActive:   m.TimetablePeriodIsActive,
		TimetablePeriodCreatedAt:  m.TimetablePeriodCreatedAt,
		TimetablePeriodUpdatedAt:  m.TimetablePeriodUpdatedAt,
	}
}

func FromTimetablePeriodModels(ms []model.TimetablePeriodModel) []TimetablePeriodResponse {
	out := make([]TimetablePeriodResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromTimetablePeriodModel(m))
	}
	return out
}

/* ===================== SUBJECTS ===================== */

type CreateSubjectRequest struct {
	SubjectCode *string `json:"subject_code" validate:"omitempty,max=32"`
	SubjectName string  `json:"subject_name" validate:"required,max=120"`
}

type UpdateSubjectRequest struct {
	SubjectCode *string `json:"subject_code" validate:"omitempty,max=32"`
	SubjectName *string `json:"subject_name" validate:"omitempty,max=120"`
}

type SubjectResponse struct {
	SubjectID       uuid.UUID `json:"subject_id"`
	SubjectBranchID uuid.UUID `json:"subject_branch_id"`
	SubjectCode     *string   `json:"subject_code,omitempty"`
	SubjectName     string    `json:"subject_name"`
	SubjectCreatedAt time.Time `json:"subject_created_at"`
	SubjectUpdatedAt time.Time `json:"subject_updated_at"`
}

func FromSubjectModel(m model.SubjectModel) SubjectResponse {
	return SubjectResponse{
		SubjectID:        m.SubjectID,
		SubjectBranchID:  m.SubjectBranchID,
		SubjectCode:      m.SubjectCode,
		SubjectName:      m.SubjectName,
		SubjectCreatedAt: m.SubjectCreatedAt,
		SubjectUpdatedAt: m.SubjectUpdatedAt,
	}
}

func FromSubjectModels(ms []model.SubjectModel) []SubjectResponse {
	out := make([]SubjectResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromSubjectModel(m))
	}
	return out
}
