package domain

import (
	"time"

	"github.com/google/uuid"
)

type Book struct {
	ID              uuid.UUID  `json:"id"`
	ISBN            string     `json:"isbn"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	Publisher       string     `json:"publisher"`
	PublicationYear int        `json:"publication_year"`
	Category        string     `json:"category"`
	Location        string     `json:"location"`
	TotalCopies     int        `json:"total_copies"`
	AvailableCopies int        `json:"available_copies"`
	Description     string     `json:"description,omitempty"`
	QRCode          string     `json:"qr_code"`
	CreatedOn       time.Time  `json:"created_on"`
	UpdatedOn       time.Time  `json:"updated_on"`
	DeletedOn       *time.Time `json:"deleted_on,omitempty"`
}
