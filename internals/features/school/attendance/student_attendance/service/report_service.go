// file: internals/features/school/attendance/student_attendance/service/report_service.go
package service

import (
	"math"

	dto "sekolahku_backend/internals/features/school/attendance/student_attendance/dto"
	model "sekolahku_backend/internals/features/school/attendance/student_attendance/model"
)

// AddStatus: akumulasi satu status ke tally (status tak dikenal cuma
// menambah total, tidak bikin error — data lama bisa saja punya nilai aneh).
func AddStatus(c *dto.StatusCounts, status model.AttendanceStatus, n int) {
	switch status {
	case model.AttendancePresent:
		c.Present += n
	case model.AttendanceAbsent:
		c.Absent += n
	case model.AttendanceLate:
		c.Late += n
	case model.AttendanceExcused:
		c.Excused += n
	case model.AttendanceMedical:
		c.Medical += n
	case model.AttendanceSuspended:
		c.Suspended += n
	case model.AttendanceActivity:
		c.Activity += n
	}
	c.Total += n
}

// Round2: setengah ke atas, 2 desimal (83.335 → 83.34)
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// AttendanceRate: (present+late)/total*100, 2 desimal.
// Tanpa record = 0.00, bukan NaN.
func AttendanceRate(c dto.StatusCounts) float64 {
	if c.Total == 0 {
		return 0.00
	}
	return Round2(float64(c.Present+c.Late) / float64(c.Total) * 100)
}
