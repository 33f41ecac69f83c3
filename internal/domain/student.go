package domain

import (
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID          uuid.UUID  `json:"id"`
	StudentID   string     `json:"student_id"` // business id, e.g. STU260001
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	DateOfBirth time.Time  `json:"date_of_birth"`
	Gender      string     `json:"gender"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Address     string     `json:"address"`
	ClassID     uuid.UUID  `json:"class_id"`
	CreatedOn   time.Time  `json:"created_on"`
	UpdatedOn   time.Time  `json:"updated_on"`
	DeletedOn   *time.Time `json:"deleted_on,omitempty"`
}

type StudentSummary struct {
	TotalStudents            int            `json:"total_students"`
	StudentsByGender         map[string]int `json:"students_by_gender"`
	StudentsByClass          map[string]int `json:"students_by_class"`
	AverageAttendanceRate    float64        `json:"average_attendance_rate"`
	StudentsWithOverdueBooks int            `json:"students_with_overdue_books"`
}
