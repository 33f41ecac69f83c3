package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"smartschool-backend/internal/domain"
	"smartschool-backend/internal/logger"
	"smartschool-backend/internal/repository"
)

type bookService struct {
	store   repository.Store
	codeGen CodeGenerator
	now     func() time.Time
}

func NewBookService(store repository.Store, codeGen CodeGenerator) BookService {
	return &bookService{store: store, codeGen: codeGen, now: time.Now}
}

func (s *bookService) Create(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	if book.ISBN == "" || book.Title == "" {
		return nil, fmt.Errorf("isbn and title are required: %w", domain.ErrInvalidArgument)
	}
	if book.TotalCopies < 1 {
		return nil, fmt.Errorf("total copies must be at least 1: %w", domain.ErrInvalidArgument)
	}

	book.ID = uuid.New()
	book.AvailableCopies = book.TotalCopies
	book.QRCode = s.codeGen.Generate(book.ISBN)

	if err := s.store.Books().Create(ctx, book); err != nil {
		return nil, err
	}
	logger.Info("Book created", "book_id", book.ID, "isbn", book.ISBN, "copies", book.TotalCopies)
	return book, nil
}

func (s *bookService) Get(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	return s.store.Books().GetByID(ctx, id)
}

func (s *bookService) GetByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	return s.store.Books().GetByISBN(ctx, isbn)
}

// Update rewrites catalog fields. Copy counts move only through the lending
// paths, so both are re-read from the stored row before writing.
func (s *bookService) Update(ctx context.Context, book *domain.Book) error {
	return s.store.WithinTx(ctx, func(ctx context.Context, r repository.Registry) error {
		current, err := r.Books().GetByIDForUpdate(ctx, book.ID)
		if err != nil {
			return err
		}
		book.TotalCopies = current.TotalCopies
		book.AvailableCopies = current.AvailableCopies
		return r.Books().Update(ctx, book)
	})
}

func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.WithinTx(ctx, func(ctx context.Context, r repository.Registry) error {
		loans, err := r.Loans().ListByBook(ctx, id)
		if err != nil {
			return err
		}
		for _, loan := range loans {
			if loan.Status == domain.LoanStatusBorrowed {
				return fmt.Errorf("book %s has active loans: %w", id, domain.ErrConflict)
			}
		}
		return r.Books().SoftDelete(ctx, id)
	})
}

func (s *bookService) List(ctx context.Context) ([]domain.Book, error) {
	return s.store.Books().List(ctx)
}

func (s *bookService) Search(ctx context.Context, term string) ([]domain.Book, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.store.Books().List(ctx)
	}
	return s.store.Books().Search(ctx, term)
}

func (s *bookService) ListByCategory(ctx context.Context, category string) ([]domain.Book, error) {
	return s.store.Books().ListByCategory(ctx, category)
}

func (s *bookService) ListByAuthor(ctx context.Context, author string) ([]domain.Book, error) {
	return s.store.Books().ListByAuthor(ctx, author)
}

func (s *bookService) ListAvailable(ctx context.Context) ([]domain.Book, error) {
	return s.store.Books().ListAvailable(ctx)
}

func (s *bookService) IsAvailable(ctx context.Context, id uuid.UUID) (bool, error) {
	book, err := s.store.Books().GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return book.AvailableCopies > 0, nil
}

func (s *bookService) Summary(ctx context.Context) (*domain.BookSummary, error) {
	books, err := s.store.Books().List(ctx)
	if err != nil {
		return nil, err
	}
	overdue, err := s.store.Loans().ListOverdue(ctx, s.now())
	if err != nil {
		return nil, err
	}
	counts, err := s.store.Loans().CountByBook(ctx)
	if err != nil {
		return nil, err
	}
	summary := BuildBookSummary(books, overdue, counts, 10)
	return summary, nil
}

func (s *bookService) PopularBooks(ctx context.Context, count int) ([]domain.PopularBook, error) {
	if count < 1 {
		return nil, fmt.Errorf("count must be positive: %w", domain.ErrInvalidArgument)
	}
	books, err := s.store.Books().List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.store.Loans().CountByBook(ctx)
	if err != nil {
		return nil, err
	}
	return rankPopularBooks(books, counts, count), nil
}

// rankPopularBooks orders books by all-time borrow count descending, breaking
// ties by title so the ordering is deterministic. Books never borrowed are
// excluded.
func rankPopularBooks(books []domain.Book, borrowCounts map[uuid.UUID]int, limit int) []domain.PopularBook {
	ranked := make([]domain.PopularBook, 0, len(books))
	for _, book := range books {
		n := borrowCounts[book.ID]
		if n == 0 {
			continue
		}
		ranked = append(ranked, domain.PopularBook{
			BookID:      book.ID,
			Title:       book.Title,
			Author:      book.Author,
			BorrowCount: n,
		})
	}
	// Stable sort: ties keep the caller's ordering.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].BorrowCount > ranked[j].BorrowCount
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
