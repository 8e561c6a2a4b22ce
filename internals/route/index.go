// file: internals/route/index.go
package routes

import (
	"sekolahku_backend/internals/configs"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"

	ttRoute "sekolahku_backend/internals/features/school/academics/timetable/route"
	sessRoute "sekolahku_backend/internals/features/school/attendance/sessions/route"
	spaRoute "sekolahku_backend/internals/features/school/attendance/student_attendance/route"
	secRoute "sekolahku_backend/internals/features/school/classes/sections/route"
	stuRoute "sekolahku_backend/internals/features/school/people/students/route"
	tchRoute "sekolahku_backend/internals/features/school/people/teachers/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes: dua surface —
//
//	/api/t  guru   (JWT + role teacher)
//	/api/a  admin  (JWT + role admin)
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	BaseRoutes(app, db)

	jwt := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	})

	api := app.Group("/api")

	teacher := api.Group("/t", jwt, authMiddleware.RequireTeacher())
	sessRoute.AttendanceSessionTeacherRoutes(teacher, db)
	spaRoute.StudentAttendanceTeacherRoutes(teacher, db)
	ttRoute.TimetableTeacherRoutes(teacher, db)
	secRoute.ClassSectionTeacherRoutes(teacher, db)
	stuRoute.StudentTeacherRoutes(teacher, db)

	admin := api.Group("/a", jwt, authMiddleware.RequireAdmin())
	sessRoute.AttendanceSessionAdminRoutes(admin, db)
	spaRoute.StudentAttendanceAdminRoutes(admin, db)
	ttRoute.TimetableAdminRoutes(admin, db)
	secRoute.ClassSectionAdminRoutes(admin, db)
	stuRoute.StudentAdminRoutes(admin, db)
	tchRoute.TeacherAdminRoutes(admin, db)
}
