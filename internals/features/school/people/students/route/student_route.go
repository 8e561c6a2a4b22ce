// file: internals/features/school/people/students/route/student_route.go
package route

import (
	stuController "sekolahku_backend/internals/features/school/people/students/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StudentAdminRoutes: CRUD siswa (/api/a)
func StudentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := stuController.NewStudentController(db)

	g := r.Group("/students")
	g.Post("/", ctrl.Create)
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.GetByID)
	g.Put("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
}

// StudentTeacherRoutes: read-only (/api/t)
func StudentTeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := stuController.NewStudentController(db)

	g := r.Group("/students")
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.GetByID)
}
