package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"smartschool-backend/internal/service"
)

const dateLayout = "2006-01-02"

type LendingHandler struct {
	lendingSvc service.LendingService
}

func NewLendingHandler(lendingSvc service.LendingService) *LendingHandler {
	return &LendingHandler{lendingSvc: lendingSvc}
}

type createLoanRequest struct {
	BookID     uuid.UUID `json:"book_id"`
	BorrowerID uuid.UUID `json:"borrower_id"`
	BorrowDate string    `json:"borrow_date"`
	DueDate    string    `json:"due_date"`
}

func (h *LendingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLoanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	borrowDate, ok := parseDate(w, req.BorrowDate, "borrow_date")
	if !ok {
		return
	}
	dueDate, ok := parseDate(w, req.DueDate, "due_date")
	if !ok {
		return
	}

	loan, err := h.lendingSvc.Create(r.Context(), req.BookID, req.BorrowerID, borrowDate, dueDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, loan)
}

type returnLoanRequest struct {
	CollectFine bool `json:"collect_fine"`
}

func (h *LendingHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	req := returnLoanRequest{CollectFine: true}
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}

	loan, err := h.lendingSvc.Return(r.Context(), id, req.CollectFine)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

type renewLoanRequest struct {
	NewDueDate string `json:"new_due_date"`
}

func (h *LendingHandler) Renew(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req renewLoanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	newDueDate, ok := parseDate(w, req.NewDueDate, "new_due_date")
	if !ok {
		return
	}

	loan, err := h.lendingSvc.Renew(r.Context(), id, newDueDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

func (h *LendingHandler) MarkLost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	loan, err := h.lendingSvc.MarkLost(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

func (h *LendingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	loan, err := h.lendingSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

func (h *LendingHandler) Fine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	fine, err := h.lendingSvc.CalculateFine(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"fine": fine.StringFixed(2)})
}

func (h *LendingHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	loans, err := h.lendingSvc.ListActive(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loans)
}

func (h *LendingHandler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	loans, err := h.lendingSvc.ListOverdue(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loans)
}

func (h *LendingHandler) ListByBorrower(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "borrowerId")
	if !ok {
		return
	}
	loans, err := h.lendingSvc.ListByBorrower(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loans)
}

func (h *LendingHandler) HistoryByBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "bookId")
	if !ok {
		return
	}
	loans, err := h.lendingSvc.HistoryByBook(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loans)
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

func parseDate(w http.ResponseWriter, value, name string) (time.Time, bool) {
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + name + ", expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}

// queryDateRange reads optional start/end query parameters.
func queryDateRange(w http.ResponseWriter, r *http.Request) (start, end *time.Time, ok bool) {
	if v := r.URL.Query().Get("start"); v != "" {
		d, valid := parseDate(w, v, "start")
		if !valid {
			return nil, nil, false
		}
		start = &d
	}
	if v := r.URL.Query().Get("end"); v != "" {
		d, valid := parseDate(w, v, "end")
		if !valid {
			return nil, nil, false
		}
		end = &d
	}
	return start, end, true
}
