package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleAdmin     UserRole = "ADMIN"
	UserRoleLibrarian UserRole = "LIBRARIAN"
	UserRoleTeacher   UserRole = "TEACHER"
)

// User is a staff account that can authenticate against the API.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedOn    time.Time `json:"created_on"`
}
