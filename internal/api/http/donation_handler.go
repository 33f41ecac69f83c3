package http

import (
	"net/http"

	"smartschool-backend/internal/domain"
	"smartschool-backend/internal/service"
)

type DonationHandler struct {
	donationSvc service.DonationService
}

func NewDonationHandler(donationSvc service.DonationService) *DonationHandler {
	return &DonationHandler{donationSvc: donationSvc}
}

func (h *DonationHandler) Process(w http.ResponseWriter, r *http.Request) {
	var donation domain.Donation
	if !decodeBody(w, r, &donation) {
		return
	}
	processed, err := h.donationSvc.Process(r.Context(), &donation)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, processed)
}

type updateDonationStatusRequest struct {
	Status domain.DonationStatus `json:"status"`
}

func (h *DonationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateDonationStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	donation, err := h.donationSvc.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, donation)
}

func (h *DonationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	donation, err := h.donationSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, donation)
}

func (h *DonationHandler) List(w http.ResponseWriter, r *http.Request) {
	if status := r.URL.Query().Get("status"); status != "" {
		donations, err := h.donationSvc.ListByStatus(r.Context(), domain.DonationStatus(status))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, donations)
		return
	}

	start, end, ok := queryDateRange(w, r)
	if !ok {
		return
	}
	if start != nil && end != nil {
		donations, err := h.donationSvc.ListByDateRange(r.Context(), *start, *end)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, donations)
		return
	}

	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "status or start/end filter required"})
}

func (h *DonationHandler) Total(w http.ResponseWriter, r *http.Request) {
	start, end, ok := queryDateRange(w, r)
	if !ok {
		return
	}
	total, err := h.donationSvc.Total(r.Context(), start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"total": total.StringFixed(2)})
}
