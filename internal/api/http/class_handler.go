package http

import (
	"net/http"

	"smartschool-backend/internal/domain"
	"smartschool-backend/internal/service"
)

type ClassHandler struct {
	classSvc service.ClassService
}

func NewClassHandler(classSvc service.ClassService) *ClassHandler {
	return &ClassHandler{classSvc: classSvc}
}

func (h *ClassHandler) Create(w http.ResponseWriter, r *http.Request) {
	var class domain.Class
	if !decodeBody(w, r, &class) {
		return
	}
	created, err := h.classSvc.Create(r.Context(), &class)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ClassHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	class, err := h.classSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, class)
}

func (h *ClassHandler) List(w http.ResponseWriter, r *http.Request) {
	classes, err := h.classSvc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

func (h *ClassHandler) AssignSubject(w http.ResponseWriter, r *http.Request) {
	classID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	subjectID, ok := pathID(w, r, "subjectId")
	if !ok {
		return
	}
	assigned, err := h.classSvc.AssignSubject(r.Context(), classID, subjectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"assigned": assigned})
}

func (h *ClassHandler) RemoveSubject(w http.ResponseWriter, r *http.Request) {
	classID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	subjectID, ok := pathID(w, r, "subjectId")
	if !ok {
		return
	}
	removed, err := h.classSvc.RemoveSubject(r.Context(), classID, subjectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

func (h *ClassHandler) Subjects(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	subjects, err := h.classSvc.Subjects(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subjects)
}
