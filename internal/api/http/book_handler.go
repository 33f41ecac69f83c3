package http

import (
	"net/http"
	"strconv"

	"smartschool-backend/internal/domain"
	"smartschool-backend/internal/service"
)

type BookHandler struct {
	bookSvc service.BookService
}

func NewBookHandler(bookSvc service.BookService) *BookHandler {
	return &BookHandler{bookSvc: bookSvc}
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var book domain.Book
	if !decodeBody(w, r, &book) {
		return
	}
	created, err := h.bookSvc.Create(r.Context(), &book)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	book, err := h.bookSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var book domain.Book
	if !decodeBody(w, r, &book) {
		return
	}
	book.ID = id
	if err := h.bookSvc.Update(r.Context(), &book); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.bookSvc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// List handles the catalog listing with optional filters:
// ?q= searches, ?category= and ?author= filter, ?available=true narrows to
// books with circulating copies.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		books []domain.Book
		err   error
	)
	switch {
	case q.Get("q") != "":
		books, err = h.bookSvc.Search(r.Context(), q.Get("q"))
	case q.Get("category") != "":
		books, err = h.bookSvc.ListByCategory(r.Context(), q.Get("category"))
	case q.Get("author") != "":
		books, err = h.bookSvc.ListByAuthor(r.Context(), q.Get("author"))
	case q.Get("available") == "true":
		books, err = h.bookSvc.ListAvailable(r.Context())
	default:
		books, err = h.bookSvc.List(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (h *BookHandler) Availability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	available, err := h.bookSvc.IsAvailable(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"available": available})
}

func (h *BookHandler) Popular(w http.ResponseWriter, r *http.Request) {
	count := 10
	if v := r.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid count"})
			return
		}
		count = n
	}
	books, err := h.bookSvc.PopularBooks(r.Context(), count)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}
