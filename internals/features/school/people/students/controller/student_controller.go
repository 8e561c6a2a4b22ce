// file: internals/features/school/people/students/controller/student_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"

	stuDTO "sekolahku_backend/internals/features/school/people/students/dto"
	stuModel "sekolahku_backend/internals/features/school/people/students/model"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db, validate: validator.New()}
}

// POST /students
func (ctrl *StudentController) Create(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	var req stuDTO.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if req.StudentCode != nil {
		var cnt int64
		if err := ctrl.DB.Model(&stuModel.StudentModel{}).
			Where("student_branch_id = ? AND student_code = ?", branchID, *req.StudentCode).
			Count(&cnt).Error; err == nil && cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "Kode siswa sudah dipakai")
		}
	}

	m := req.ToModel(branchID)
	if err := ctrl.DB.Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat siswa")
	}
	return helper.JsonCreated(c, "Siswa berhasil dibuat", stuDTO.FromStudentModel(*m))
}

// GET /students?search=&is_active=
func (ctrl *StudentController) List(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 50, 200)

	tx := ctrl.DB.Model(&stuModel.StudentModel{}).
		Where("student_branch_id = ?", branchID)

	if raw := strings.TrimSpace(c.Query("search")); raw != "" {
		tx = tx.Where("student_name ILIKE ? OR student_code ILIKE ?", "%"+raw+"%", "%"+raw+"%")
	}
	if raw := strings.TrimSpace(c.Query("is_active")); raw != "" {
		tx = tx.Where("student_is_active = ?", raw == "true")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung siswa")
	}

	var rows []stuModel.StudentModel
	if err := tx.Order("student_roll_number ASC NULLS LAST, student_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil siswa")
	}

	return helper.JsonList(c, "ok",
		stuDTO.FromStudentModels(rows),
		helper.BuildPagination(total, paging.Page, paging.PerPage, len(rows)))
}

// GET /students/:id
func (ctrl *StudentController) GetByID(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var m stuModel.StudentModel
	if err := ctrl.DB.
		First(&m, "student_id = ? AND student_branch_id = ?", id, branchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil siswa")
	}
	return helper.JsonOK(c, "ok", stuDTO.FromStudentModel(m))
}

// PUT /students/:id
func (ctrl *StudentController) Update(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req stuDTO.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m stuModel.StudentModel
	if err := ctrl.DB.
		First(&m, "student_id = ? AND student_branch_id = ?", id, branchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil siswa")
	}

	patch := map[string]interface{}{"student_updated_at": time.Now()}
	if req.StudentCode != nil {
		patch["student_code"] = *req.StudentCode
	}
	if req.StudentName != nil {
		patch["student_name"] = *req.StudentName
	}
	if req.StudentRollNumber != nil {
		patch["student_roll_number"] = *req.StudentRollNumber
	}
	if req.StudentIsActive != nil {
		patch["student_is_active"] = *req.StudentIsActive
	}
	if err := ctrl.DB.Model(&m).Updates(patch).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui siswa")
	}

	var updated stuModel.StudentModel
	if err := ctrl.DB.First(&updated, "student_id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil siswa")
	}
	return helper.JsonUpdated(c, "Siswa berhasil diperbarui", stuDTO.FromStudentModel(updated))
}

// DELETE /students/:id (soft delete)
func (ctrl *StudentController) Delete(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	res := ctrl.DB.
		Where("student_id = ? AND student_branch_id = ?", id, branchID).
		Delete(&stuModel.StudentModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus siswa")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Siswa berhasil dihapus", fiber.Map{"student_id": id})
}
