package http

import (
	"net/http"

	"github.com/google/uuid"

	"smartschool-backend/internal/domain"
	"smartschool-backend/internal/service"
)

type StudentHandler struct {
	studentSvc service.StudentService
}

func NewStudentHandler(studentSvc service.StudentService) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc}
}

func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var student domain.Student
	if !decodeBody(w, r, &student) {
		return
	}
	created, err := h.studentSvc.Create(r.Context(), &student)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	student, err := h.studentSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var student domain.Student
	if !decodeBody(w, r, &student) {
		return
	}
	student.ID = id
	if err := h.studentSvc.Update(r.Context(), &student); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.studentSvc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		students []domain.Student
		err      error
	)
	switch {
	case q.Get("q") != "":
		students, err = h.studentSvc.Search(r.Context(), q.Get("q"))
	case q.Get("class_id") != "":
		var classID uuid.UUID
		classID, err = uuid.Parse(q.Get("class_id"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid class_id"})
			return
		}
		students, err = h.studentSvc.ListByClass(r.Context(), classID)
	default:
		students, err = h.studentSvc.List(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, students)
}

type transferRequest struct {
	ClassID uuid.UUID `json:"class_id"`
}

func (h *StudentHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req transferRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.studentSvc.TransferToClass(r.Context(), id, req.ClassID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (h *StudentHandler) LendingHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	loans, err := h.studentSvc.LendingHistory(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loans)
}
