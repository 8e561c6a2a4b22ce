// file: internals/features/school/academics/timetable/route/timetable_route.go
package route

import (
	ttController "sekolahku_backend/internals/features/school/academics/timetable/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TimetableAdminRoutes: CRUD timetable & mapel (/api/a)
func TimetableAdminRoutes(r fiber.Router, db *gorm.DB) {
	periods := ttController.NewTimetablePeriodController(db)
	subjects := ttController.NewSubjectController(db)

	p := r.Group("/timetable-periods")
	p.Post("/", periods.Create)
	p.Get("/", periods.List)
	p.Get("/:id", periods.GetByID)
	p.Put("/:id", periods.Update)
	p.Delete("/:id", periods.Delete)

	s := r.Group("/subjects")
	s.Post("/", subjects.Create)
	s.Get("/", subjects.List)
	s.Put("/:id", subjects.Update)
	s.Delete("/:id", subjects.Delete)
}

// TimetableTeacherRoutes: read-only untuk guru (/api/t)
func TimetableTeacherRoutes(r fiber.Router, db *gorm.DB) {
	periods := ttController.NewTimetablePeriodController(db)

	p := r.Group("/timetable-periods")
	p.Get("/", periods.List)
	p.Get("/:id", periods.GetByID)
}
