// file: internals/features/school/classes/sections/controller/class_section_controller.go
package controller

import (
	"errors"
	"time"

	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"

	secDTO "sekolahku_backend/internals/features/school/classes/sections/dto"
	secModel "sekolahku_backend/internals/features/school/classes/sections/model"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClassSectionController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewClassSectionController(db *gorm.DB) *ClassSectionController {
	return &ClassSectionController{DB: db, validate: validator.New()}
}

func (ctrl *ClassSectionController) findScoped(branchID, id uuid.UUID) (*secModel.ClassSectionModel, error) {
	var m secModel.ClassSectionModel
	if err := ctrl.DB.
		First(&m, "class_section_id = ? AND class_section_branch_id = ?", id, branchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Section tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil section")
	}
	return &m, nil
}

/* ===============================
   CRUD SECTION
=============================== */

// POST /class-sections
func (ctrl *ClassSectionController) Create(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	var req secDTO.CreateClassSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := secModel.ClassSectionModel{
		ClassSectionBranchID:  branchID,
		ClassSectionName:      req.ClassSectionName,
		ClassSectionTeacherID: req.ClassSectionTeacherID,
		ClassSectionIsActive:  true,
	}
	if err := ctrl.DB.Create(&m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat section")
	}
	return helper.JsonCreated(c, "Section berhasil dibuat", secDTO.FromClassSectionModel(m))
}

// GET /class-sections
func (ctrl *ClassSectionController) List(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 50, 200)

	tx := ctrl.DB.Model(&secModel.ClassSectionModel{}).
		Where("class_section_branch_id = ?", branchID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung section")
	}

	var rows []secModel.ClassSectionModel
	if err := tx.Order("class_section_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil section")
	}

	return helper.JsonList(c, "ok",
		secDTO.FromClassSectionModels(rows),
		helper.BuildPagination(total, paging.Page, paging.PerPage, len(rows)))
}

// GET /class-sections/:id
func (ctrl *ClassSectionController) GetByID(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	m, err := ctrl.findScoped(branchID, id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", secDTO.FromClassSectionModel(*m))
}

// PUT /class-sections/:id
func (ctrl *ClassSectionController) Update(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req secDTO.UpdateClassSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := ctrl.findScoped(branchID, id)
	if err != nil {
		return err
	}

	patch := map[string]interface{}{"class_section_updated_at": time.Now()}
	if req.ClassSectionName != nil {
		patch["class_section_name"] = *req.ClassSectionName
	}
	if req.ClassSectionTeacherID != nil {
		patch["class_section_teacher_id"] = *req.ClassSectionTeacherID
	}
	if req.ClassSectionIsActive != nil {
		patch["class_section_is_active"] = *req.ClassSectionIsActive
	}
	if err := ctrl.DB.Model(m).Updates(patch).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui section")
	}

	updated, err := ctrl.findScoped(branchID, id)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Section berhasil diperbarui", secDTO.FromClassSectionModel(*updated))
}

// DELETE /class-sections/:id (soft delete)
func (ctrl *ClassSectionController) Delete(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	res := ctrl.DB.
		Where("class_section_id = ? AND class_section_branch_id = ?", id, branchID).
		Delete(&secModel.ClassSectionModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus section")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Section tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Section berhasil dihapus", fiber.Map{"class_section_id": id})
}

/* ===============================
   ENROLLMENT
=============================== */

// POST /class-sections/:id/students
// Enroll ulang siswa yang pernah nonaktif = aktifkan lagi baris yang sama.
func (ctrl *ClassSectionController) EnrollStudent(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	sectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req secDTO.EnrollStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if _, err := ctrl.findScoped(branchID, sectionID); err != nil {
		return err
	}

	var joined *time.Time
	if req.ClassSectionStudentJoinedAt != nil {
		d, _ := time.Parse("2006-01-02", *req.ClassSectionStudentJoinedAt)
		joined = &d
	}

	m := secModel.ClassSectionStudentModel{
		ClassSectionStudentBranchID:  branchID,
		ClassSectionStudentSectionID: sectionID,
		ClassSectionStudentStudentID: req.ClassSectionStudentStudentID,
		ClassSectionStudentIsActive:  true,
		ClassSectionStudentJoinedAt:  joined,
	}
	if err := ctrl.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "class_section_student_section_id"},
			{Name: "class_section_student_student_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"class_section_student_is_active",
			"class_section_student_updated_at",
		}),
	}).Create(&m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mendaftarkan siswa")
	}

	return helper.JsonCreated(c, "Siswa terdaftar di section", secDTO.FromEnrollmentModel(m))
}

// DELETE /class-sections/:id/students/:student_id
// Nonaktifkan enrollment, bukan hapus baris — riwayat kehadiran tetap valid.
func (ctrl *ClassSectionController) UnenrollStudent(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	sectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "student_id tidak valid")
	}

	res := ctrl.DB.Model(&secModel.ClassSectionStudentModel{}).
		Where("class_section_student_branch_id = ? AND class_section_student_section_id = ? AND class_section_student_student_id = ?",
			branchID, sectionID, studentID).
		Updates(map[string]interface{}{
			"class_section_student_is_active":  false,
			"class_section_student_updated_at": time.Now(),
		})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengeluarkan siswa")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Enrollment tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Siswa dikeluarkan dari section", fiber.Map{
		"class_section_id": sectionID,
		"student_id":       studentID,
	})
}
