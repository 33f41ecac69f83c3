package domain

import (
	"time"

	"github.com/google/uuid"
)

// Attendance is one (student, calendar date) presence record. The pair is
// unique; repeated marks for the same pair are updates, never duplicates.
type Attendance struct {
	ID        uuid.UUID `json:"id"`
	StudentID uuid.UUID `json:"student_id"`
	Date      time.Time `json:"date"`
	IsPresent bool      `json:"is_present"`
	Remarks   string    `json:"remarks,omitempty"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// StudentAttendanceEntry is one row of a bulk attendance submission.
type StudentAttendanceEntry struct {
	StudentID uuid.UUID `json:"student_id"`
	IsPresent bool      `json:"is_present"`
	Remarks   string    `json:"remarks,omitempty"`
}

type AttendanceStat struct {
	TotalStudents        int     `json:"total_students"`
	PresentStudents      int     `json:"present_students"`
	AbsentStudents       int     `json:"absent_students"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

type AttendanceSummary struct {
	Date                 time.Time                 `json:"date"`
	TotalStudents        int                       `json:"total_students"`
	PresentStudents      int                       `json:"present_students"`
	AbsentStudents       int                       `json:"absent_students"`
	AttendancePercentage float64                   `json:"attendance_percentage"`
	AttendanceByClass    map[string]AttendanceStat `json:"attendance_by_class"`
}

type DailyAttendance struct {
	Date                 time.Time `json:"date"`
	PresentCount         int       `json:"present_count"`
	AbsentCount          int       `json:"absent_count"`
	AttendancePercentage float64   `json:"attendance_percentage"`
}

type MonthlyAttendance struct {
	Year              int               `json:"year"`
	Month             int               `json:"month"`
	WorkingDays       int               `json:"working_days"`
	AverageAttendance float64           `json:"average_attendance"`
	DailyAttendance   []DailyAttendance `json:"daily_attendance"`
}
