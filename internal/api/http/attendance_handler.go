package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"smartschool-backend/internal/domain"
	"smartschool-backend/internal/service"
)

type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

type bulkAttendanceRequest struct {
	Date    string                          `json:"date"`
	ClassID uuid.UUID                       `json:"class_id"`
	Entries []domain.StudentAttendanceEntry `json:"entries"`
}

func (h *AttendanceHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var req bulkAttendanceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	date, ok := parseDate(w, req.Date, "date")
	if !ok {
		return
	}
	if err := h.attendanceSvc.BulkCreate(r.Context(), date, req.ClassID, req.Entries); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, nil)
}

func (h *AttendanceHandler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req bulkAttendanceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	date, ok := parseDate(w, req.Date, "date")
	if !ok {
		return
	}
	if err := h.attendanceSvc.BulkUpdate(r.Context(), date, req.Entries); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (h *AttendanceHandler) StudentPercentage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "studentId")
	if !ok {
		return
	}
	start, end, ok := requiredDateRange(w, r)
	if !ok {
		return
	}
	pct, err := h.attendanceSvc.StudentPercentage(r.Context(), id, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"attendance_percentage": pct})
}

func (h *AttendanceHandler) ClassPercentages(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "classId")
	if !ok {
		return
	}
	start, end, ok := requiredDateRange(w, r)
	if !ok {
		return
	}
	percentages, err := h.attendanceSvc.ClassPercentages(r.Context(), id, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, percentages)
}

func (h *AttendanceHandler) ListByStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "studentId")
	if !ok {
		return
	}
	start, end, ok := requiredDateRange(w, r)
	if !ok {
		return
	}
	records, err := h.attendanceSvc.ListByStudent(r.Context(), id, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *AttendanceHandler) ListByClass(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "classId")
	if !ok {
		return
	}
	date, ok := parseDate(w, r.URL.Query().Get("date"), "date")
	if !ok {
		return
	}
	records, err := h.attendanceSvc.ListByClass(r.Context(), id, date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *AttendanceHandler) DailySummary(w http.ResponseWriter, r *http.Request) {
	date, ok := parseDate(w, r.URL.Query().Get("date"), "date")
	if !ok {
		return
	}
	summary, err := h.attendanceSvc.DailySummary(r.Context(), date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *AttendanceHandler) AbsentStudents(w http.ResponseWriter, r *http.Request) {
	date, ok := parseDate(w, r.URL.Query().Get("date"), "date")
	if !ok {
		return
	}
	students, err := h.attendanceSvc.AbsentStudents(r.Context(), date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, students)
}

func (h *AttendanceHandler) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid year"})
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid month"})
		return
	}
	report, err := h.attendanceSvc.MonthlyReport(r.Context(), year, month)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func requiredDateRange(w http.ResponseWriter, r *http.Request) (start, end time.Time, ok bool) {
	start, ok = parseDate(w, r.URL.Query().Get("start"), "start")
	if !ok {
		return
	}
	end, ok = parseDate(w, r.URL.Query().Get("end"), "end")
	return
}
