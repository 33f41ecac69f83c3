package http

import (
	"net/http"

	"smartschool-backend/internal/service"
)

// ReportHandler exposes the aggregated summaries.
type ReportHandler struct {
	lendingSvc  service.LendingService
	bookSvc     service.BookService
	donationSvc service.DonationService
	studentSvc  service.StudentService
	teacherSvc  service.TeacherService
}

func NewReportHandler(lendingSvc service.LendingService, bookSvc service.BookService,
	donationSvc service.DonationService, studentSvc service.StudentService,
	teacherSvc service.TeacherService) *ReportHandler {
	return &ReportHandler{
		lendingSvc:  lendingSvc,
		bookSvc:     bookSvc,
		donationSvc: donationSvc,
		studentSvc:  studentSvc,
		teacherSvc:  teacherSvc,
	}
}

func (h *ReportHandler) Lending(w http.ResponseWriter, r *http.Request) {
	start, end, ok := queryDateRange(w, r)
	if !ok {
		return
	}
	summary, err := h.lendingSvc.Summary(r.Context(), start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *ReportHandler) Books(w http.ResponseWriter, r *http.Request) {
	summary, err := h.bookSvc.Summary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *ReportHandler) Donations(w http.ResponseWriter, r *http.Request) {
	start, end, ok := queryDateRange(w, r)
	if !ok {
		return
	}
	summary, err := h.donationSvc.Summary(r.Context(), start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *ReportHandler) Students(w http.ResponseWriter, r *http.Request) {
	summary, err := h.studentSvc.Summary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *ReportHandler) Teachers(w http.ResponseWriter, r *http.Request) {
	summary, err := h.teacherSvc.Summary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
