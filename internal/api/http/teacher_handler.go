package http

import (
	"net/http"

	"smartschool-backend/internal/domain"
	"smartschool-backend/internal/service"
)

type TeacherHandler struct {
	teacherSvc service.TeacherService
}

func NewTeacherHandler(teacherSvc service.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacherSvc: teacherSvc}
}

func (h *TeacherHandler) Create(w http.ResponseWriter, r *http.Request) {
	var teacher domain.Teacher
	if !decodeBody(w, r, &teacher) {
		return
	}
	created, err := h.teacherSvc.Create(r.Context(), &teacher)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *TeacherHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	teacher, err := h.teacherSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, teacher)
}

func (h *TeacherHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var teacher domain.Teacher
	if !decodeBody(w, r, &teacher) {
		return
	}
	teacher.ID = id
	if err := h.teacherSvc.Update(r.Context(), &teacher); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, teacher)
}

func (h *TeacherHandler) List(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		teachers, err := h.teacherSvc.Search(r.Context(), q)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, teachers)
		return
	}
	teachers, err := h.teacherSvc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, teachers)
}

func (h *TeacherHandler) AssignClass(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	classID, ok := pathID(w, r, "classId")
	if !ok {
		return
	}
	assigned, err := h.teacherSvc.AssignClass(r.Context(), teacherID, classID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"assigned": assigned})
}

func (h *TeacherHandler) RemoveClass(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	classID, ok := pathID(w, r, "classId")
	if !ok {
		return
	}
	removed, err := h.teacherSvc.RemoveClass(r.Context(), teacherID, classID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

func (h *TeacherHandler) AssignSubject(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	subjectID, ok := pathID(w, r, "subjectId")
	if !ok {
		return
	}
	assigned, err := h.teacherSvc.AssignSubject(r.Context(), teacherID, subjectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"assigned": assigned})
}

func (h *TeacherHandler) RemoveSubject(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	subjectID, ok := pathID(w, r, "subjectId")
	if !ok {
		return
	}
	removed, err := h.teacherSvc.RemoveSubject(r.Context(), teacherID, subjectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

func (h *TeacherHandler) Classes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	classes, err := h.teacherSvc.Classes(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

func (h *TeacherHandler) Subjects(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	subjects, err := h.teacherSvc.Subjects(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subjects)
}

func (h *TeacherHandler) Workload(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	workload, err := h.teacherSvc.Workload(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"workload": workload})
}
