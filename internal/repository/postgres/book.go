package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"smartschool-backend/internal/domain"
	"smartschool-backend/internal/repository"
)

const bookColumns = `id, isbn, title, author, publisher, publication_year, category, location,
	total_copies, available_copies, description, qr_code, created_on, updated_on, deleted_on`

type bookRepository struct {
	q Querier
}

func NewBookRepository(q Querier) repository.BookRepository {
	return &bookRepository{q: q}
}

func (r *bookRepository) Create(ctx context.Context, b *domain.Book) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	query := `INSERT INTO books (id, isbn, title, author, publisher, publication_year, category, location,
	            total_copies, available_copies, description, qr_code, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	now := time.Now()
	_, err := r.q.ExecContext(ctx, query, b.ID, b.ISBN, b.Title, b.Author, b.Publisher, b.PublicationYear,
		b.Category, b.Location, b.TotalCopies, b.AvailableCopies, b.Description, b.QRCode, now, now)
	return mapError(err)
}

func (r *bookRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1 AND deleted_on IS NULL`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

func (r *bookRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1 AND deleted_on IS NULL FOR UPDATE`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

func (r *bookRepository) GetByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE isbn = $1 AND deleted_on IS NULL`
	return r.scanOne(r.q.QueryRowContext(ctx, query, isbn))
}

func (r *bookRepository) Update(ctx context.Context, b *domain.Book) error {
	query := `UPDATE books SET isbn=$1, title=$2, author=$3, publisher=$4, publication_year=$5,
	            category=$6, location=$7, total_copies=$8, available_copies=$9, description=$10,
	            qr_code=$11, updated_on=$12
	          WHERE id=$13 AND deleted_on IS NULL`
	res, err := r.q.ExecContext(ctx, query, b.ISBN, b.Title, b.Author, b.Publisher, b.PublicationYear,
		b.Category, b.Location, b.TotalCopies, b.AvailableCopies, b.Description, b.QRCode, time.Now(), b.ID)
	if err != nil {
		return mapError(err)
	}
	return requireRow(res)
}

func (r *bookRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE books SET deleted_on=$1, updated_on=$1 WHERE id=$2 AND deleted_on IS NULL`
	res, err := r.q.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return mapError(err)
	}
	return requireRow(res)
}

func (r *bookRepository) List(ctx context.Context) ([]domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE deleted_on IS NULL ORDER BY title`
	return r.scanMany(ctx, query)
}

func (r *bookRepository) Search(ctx context.Context, term string) ([]domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books
	          WHERE deleted_on IS NULL AND
	                (title ILIKE '%' || $1 || '%' OR author ILIKE '%' || $1 || '%' OR
	                 isbn ILIKE '%' || $1 || '%' OR publisher ILIKE '%' || $1 || '%' OR
	                 category ILIKE '%' || $1 || '%')
	          ORDER BY title`
	return r.scanMany(ctx, query, term)
}

func (r *bookRepository) ListByCategory(ctx context.Context, category string) ([]domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE category = $1 AND deleted_on IS NULL ORDER BY title`
	return r.scanMany(ctx, query, category)
}

func (r *bookRepository) ListByAuthor(ctx context.Context, author string) ([]domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books
	          WHERE author ILIKE '%' || $1 || '%' AND deleted_on IS NULL ORDER BY title`
	return r.scanMany(ctx, query, author)
}

func (r *bookRepository) ListAvailable(ctx context.Context) ([]domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books
	          WHERE available_copies > 0 AND deleted_on IS NULL ORDER BY title`
	return r.scanMany(ctx, query)
}

// AdjustAvailability guards 0 <= available_copies <= total_copies in the
// update itself, so a concurrent adjustment cannot slip past a stale read.
func (r *bookRepository) AdjustAvailability(ctx context.Context, id uuid.UUID, delta int) error {
	query := `UPDATE books SET available_copies = available_copies + $1, updated_on = $2
	          WHERE id = $3 AND deleted_on IS NULL
	            AND available_copies + $1 >= 0
	            AND available_copies + $1 <= total_copies`
	res, err := r.q.ExecContext(ctx, query, delta, time.Now(), id)
	if err != nil {
		return mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists bool
		check := `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1 AND deleted_on IS NULL)`
		if err := r.q.QueryRowContext(ctx, check, id).Scan(&exists); err != nil {
			return mapError(err)
		}
		if !exists {
			return fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("adjust by %d rejected: %w", delta, domain.ErrBookUnavailable)
	}
	return nil
}

func (r *bookRepository) scanOne(row *sql.Row) (*domain.Book, error) {
	b := &domain.Book{}
	err := row.Scan(&b.ID, &b.ISBN, &b.Title, &b.Author, &b.Publisher, &b.PublicationYear,
		&b.Category, &b.Location, &b.TotalCopies, &b.AvailableCopies, &b.Description, &b.QRCode,
		&b.CreatedOn, &b.UpdatedOn, &b.DeletedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return b, nil
}

func (r *bookRepository) scanMany(ctx context.Context, query string, args ...any) ([]domain.Book, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.ID, &b.ISBN, &b.Title, &b.Author, &b.Publisher, &b.PublicationYear,
			&b.Category, &b.Location, &b.TotalCopies, &b.AvailableCopies, &b.Description, &b.QRCode,
			&b.CreatedOn, &b.UpdatedOn, &b.DeletedOn); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// requireRow converts a zero-row update into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
