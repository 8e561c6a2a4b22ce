// file: internals/features/school/attendance/sessions/route/attendance_session_route.go
package route

import (
	sessController "sekolahku_backend/internals/features/school/attendance/sessions/controller"
	"sekolahku_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AttendanceSessionTeacherRoutes: surface guru (/api/t)
func AttendanceSessionTeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := sessController.NewAttendanceSessionController(db)

	sessions := r.Group("/attendance/sessions")

	// lookup
	sessions.Get("/current", ctrl.GetCurrentSession)
	sessions.Get("/today", ctrl.ListTodaySessions)
	sessions.Get("/", ctrl.ListSessions)
	sessions.Get("/:id", ctrl.GetSession)
	sessions.Get("/:id/roster", ctrl.GetSessionRoster)

	// marking (rate limit terpisah untuk bulk write)
	sessions.Post("/:id/mark", middlewares.BulkWriteRateLimiter(), ctrl.BulkMark)
	sessions.Patch("/:id/students/:student_id", ctrl.MarkSingleStudent)
	sessions.Post("/:id/bulk-present", middlewares.BulkWriteRateLimiter(), ctrl.BulkPresent)
	sessions.Post("/:id/bulk-absent", middlewares.BulkWriteRateLimiter(), ctrl.BulkAbsent)

	// lifecycle
	sessions.Post("/:id/complete", ctrl.CompleteSession)
	sessions.Post("/:id/reopen", ctrl.ReopenSession)
}

// AttendanceSessionAdminRoutes: surface admin (/api/a)
func AttendanceSessionAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := sessController.NewAttendanceSessionController(db)

	sessions := r.Group("/attendance/sessions")

	sessions.Post("/", ctrl.CreateAttendanceSession)
	sessions.Post("/generate-from-timetable", ctrl.GenerateFromTimetable)
	sessions.Post("/:id/generate-dummy-data", ctrl.GenerateDummyData)
	sessions.Get("/", ctrl.ListSessions)
	sessions.Get("/:id", ctrl.GetSession)
	sessions.Get("/:id/roster", ctrl.GetSessionRoster)
	sessions.Post("/:id/reopen", ctrl.ReopenSession)
}
