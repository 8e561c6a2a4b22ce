// file: internals/features/school/classes/sections/route/class_section_route.go
package route

import (
	secController "sekolahku_backend/internals/features/school/classes/sections/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ClassSectionAdminRoutes: CRUD section + enrollment (/api/a)
func ClassSectionAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := secController.NewClassSectionController(db)

	g := r.Group("/class-sections")
	g.Post("/", ctrl.Create)
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.GetByID)
	g.Put("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)

	g.Post("/:id/students", ctrl.EnrollStudent)
	g.Delete("/:id/students/:student_id", ctrl.UnenrollStudent)
}

// ClassSectionTeacherRoutes: read-only (/api/t)
func ClassSectionTeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := secController.NewClassSectionController(db)

	g := r.Group("/class-sections")
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.GetByID)
}
