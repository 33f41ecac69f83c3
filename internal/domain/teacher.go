package domain

import (
	"time"

	"github.com/google/uuid"
)

type Teacher struct {
	ID             uuid.UUID  `json:"id"`
	TeacherID      string     `json:"teacher_id"` // business id, e.g. TCH260001
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Specialization string     `json:"specialization"`
	JoiningDate    time.Time  `json:"joining_date"`
	CreatedOn      time.Time  `json:"created_on"`
	UpdatedOn      time.Time  `json:"updated_on"`
	DeletedOn      *time.Time `json:"deleted_on,omitempty"`
}

type TeacherSummary struct {
	TotalTeachers            int            `json:"total_teachers"`
	TeachersBySpecialization map[string]int `json:"teachers_by_specialization"`
	AverageClassesPerTeacher float64        `json:"average_classes_per_teacher"`
}

type Class struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Section   string    `json:"section"`
	Capacity  int       `json:"capacity"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

type Subject struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}
