// file: internals/features/school/academics/timetable/controller/subject_controller.go
package controller

import (
	"errors"
	"time"

	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"

	ttDTO "sekolahku_backend/internals/features/school/academics/timetable/dto"
	ttModel "sekolahku_backend/internals/features/school/academics/timetable/model"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubjectController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewSubjectController(db *gorm.DB) *SubjectController {
	return &SubjectController{DB: db, validate: validator.New()}
}

// POST /subjects
func (ctrl *SubjectController) Create(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	var req ttDTO.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := ttModel.SubjectModel{
		SubjectBranchID: branchID,
		SubjectCode:     req.SubjectCode,
		SubjectName:     req.SubjectName,
	}
	if err := ctrl.DB.Create(&m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat mapel")
	}
	return helper.JsonCreated(c, "Mapel berhasil dibuat", ttDTO.FromSubjectModel(m))
}

// GET /subjects
func (ctrl *SubjectController) List(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 50, 200)

	tx := ctrl.DB.Model(&ttModel.SubjectModel{}).
		Where("subject_branch_id = ?", branchID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung mapel")
	}

	var rows []ttModel.SubjectModel
	if err := tx.Order("subject_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil mapel")
	}

	return helper.JsonList(c, "ok",
		ttDTO.FromSubjectModels(rows),
		helper.BuildPagination(total, paging.Page, paging.PerPage, len(rows)))
}

// PUT /subjects/:id
func (ctrl *SubjectController) Update(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req ttDTO.UpdateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m ttModel.SubjectModel
	if err := ctrl.DB.
		First(&m, "subject_id = ? AND subject_branch_id = ?", id, branchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Mapel tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil mapel")
	}

	patch := map[string]interface{}{"subject_updated_at": time.Now()}
	if req.SubjectCode != nil {
		patch["subject_code"] = *req.SubjectCode
	}
	if req.SubjectName != nil {
		patch["subject_name"] = *req.SubjectName
	}
	if err := ctrl.DB.Model(&m).Updates(patch).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui mapel")
	}

	var updated ttModel.SubjectModel
	if err := ctrl.DB.First(&updated, "subject_id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil mapel")
	}
	return helper.JsonUpdated(c, "Mapel berhasil diperbarui", ttDTO.FromSubjectModel(updated))
}

// DELETE /subjects/:id
func (ctrl *SubjectController) Delete(c *fiber.Ctx) error {
	branchID, err := helperAuth.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	res := ctrl.DB.
		Where("subject_id = ? AND subject_branch_id = ?", id, branchID).
		Delete(&ttModel.SubjectModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus mapel")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Mapel tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Mapel berhasil dihapus", fiber.Map{"subject_id": id})
}
