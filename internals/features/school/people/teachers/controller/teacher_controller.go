// file: internals/features/school/people/teachers/controller/teacher_controller.go
package controller

import (
	"errors"
	"strings"

	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"

	tchModel "sekolahku_backend/internals/features/school/people/teachers/model"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sumber data penugasan sesi — read-only di subsistem ini, penulisan guru
// hidup di modul manajemen user.
type TeacherController struct {
	DB *gorm.DB
}

func NewTeacherController(db *gorm.DB) *TeacherController {
	return &TeacherController{DB: db}
}

// GET /teachers?search=
func (ctrl *TeacherController) List(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 50, 200)

	tx := ctrl.DB.Model(&tchModel.TeacherModel{}).
		Where("teacher_branch_id = ?", branchID)
	if raw := strings.TrimSpace(c.Query("search")); raw != "" {
		tx = tx.Where("teacher_name ILIKE ? OR teacher_code ILIKE ?", "%"+raw+"%", "%"+raw+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung guru")
	}

	var rows []tchModel.TeacherModel
	if err := tx.Order("teacher_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil guru")
	}

	return helper.JsonList(c, "ok", rows,
		helper.BuildPagination(total, paging.Page, paging.PerPage, len(rows)))
}

// GET /teachers/:id
func (ctrl *TeacherController) GetByID(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var m tchModel.TeacherModel
	if err := ctrl.DB.
		First(&m, "teacher_id = ? AND teacher_branch_id = ?", id, branchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Guru tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil guru")
	}
	return helper.JsonOK(c, "ok", m)
}
