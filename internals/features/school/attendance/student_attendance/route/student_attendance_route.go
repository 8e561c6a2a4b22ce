// file: internals/features/school/attendance/student_attendance/route/student_attendance_route.go
package route

import (
	spaController "sekolahku_backend/internals/features/school/attendance/student_attendance/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func mountReadRoutes(g fiber.Router, crud *spaController.StudentPeriodAttendanceController, report *spaController.StudentAttendanceReportController) {
	// path statis/bertingkat dulu, baru :id
	g.Get("/student/:student_id/summary", report.StudentSummary)
	g.Get("/session/:session_id/report", report.SessionReport)
	g.Get("/analytics/patterns", report.AttendancePatterns)
	g.Get("/reports/subject-wise", report.SubjectWiseReport)
	g.Get("/dashboard/stats", report.DashboardStats)

	g.Get("/", crud.List)
	g.Get("/:id", crud.GetByID)
}

// StudentAttendanceTeacherRoutes: surface guru (/api/t)
func StudentAttendanceTeacherRoutes(r fiber.Router, db *gorm.DB) {
	crud := spaController.NewStudentPeriodAttendanceController(db)
	report := spaController.NewStudentAttendanceReportController(db)

	g := r.Group("/student-period-attendance")
	mountReadRoutes(g, crud, report)

	g.Post("/", crud.Create)
	g.Put("/:id", crud.Update)
}

// StudentAttendanceAdminRoutes: surface admin (/api/a) — plus delete (remediasi)
func StudentAttendanceAdminRoutes(r fiber.Router, db *gorm.DB) {
	crud := spaController.NewStudentPeriodAttendanceController(db)
	report := spaController.NewStudentAttendanceReportController(db)

	g := r.Group("/student-period-attendance")
	mountReadRoutes(g, crud, report)

	g.Post("/", crud.Create)
	g.Put("/:id", crud.Update)
	g.Delete("/:id", crud.Delete)
}
