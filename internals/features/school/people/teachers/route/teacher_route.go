// file: internals/features/school/people/teachers/route/teacher_route.go
package route

import (
	tchController "sekolahku_backend/internals/features/school/people/teachers/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TeacherAdminRoutes: lookup guru untuk penugasan sesi (/api/a)
func TeacherAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := tchController.NewTeacherController(db)

	g := r.Group("/teachers")
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.GetByID)
}
