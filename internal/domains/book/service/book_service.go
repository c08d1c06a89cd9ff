package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"books-api/internal/domains/book/model"
	"books-api/internal/domains/book/repository"

	"github.com/rs/zerolog/log"
)

// BookService runs every operation in its own unit of work.
type BookService struct {
	uow repository.UnitOfWork
}

func NewBookService(uow repository.UnitOfWork) *BookService {
	return &BookService{uow: uow}
}

func (s *BookService) ListBooks(ctx context.Context) ([]model.BookSummaryDTO, error) {
	var books []model.Book
	err := s.uow.WithinTx(ctx, func(r repository.Repositories) error {
		var err error
		books, err = r.Books.List(ctx, nil)
		return err
	})
	if err != nil {
		return nil, s.fault("list books", 0, err)
	}
	return model.ToSummaries(books), nil
}

func (s *BookService) GetBook(ctx context.Context, id int) (*model.BookSummaryDTO, error) {
	b, err := s.get(ctx, id)
	if err != nil {
		return nil, s.fault("get book", id, err)
	}
	summary := model.ToSummary(*b)
	return &summary, nil
}

// GetBookDetail looks the book up by its own external id.
func (s *BookService) GetBookDetail(ctx context.Context, id int) (*model.BookDetailDTO, error) {
	b, err := s.get(ctx, id)
	if err != nil {
		return nil, s.fault("get book detail", id, err)
	}
	detail := model.ToDetail(*b)
	return &detail, nil
}

// GetBooksByDate returns the books published on the calendar day of date.
func (s *BookService) GetBooksByDate(ctx context.Context, date time.Time) ([]model.BookSummaryDTO, error) {
	day := model.DayRange(date)

	var books []model.Book
	err := s.uow.WithinTx(ctx, func(r repository.Repositories) error {
		var err error
		books, err = r.Books.List(ctx, &day)
		return err
	})
	if err != nil {
		return nil, s.fault("list books by date", 0, err)
	}
	return model.ToSummaries(books), nil
}

func (s *BookService) CreateBook(ctx context.Context, dto model.BookDetailDTO) (*model.BookDetailDTO, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	var created *model.Book
	err := s.uow.WithinTx(ctx, func(r repository.Repositories) error {
		b, err := model.ToEntity(ctx, r.Authors, dto)
		if err != nil {
			return err
		}
		if _, err := r.Books.Insert(ctx, b); err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, s.fault("create book", dto.ID, err)
	}

	detail := model.ToDetail(*created)
	return &detail, nil
}

// UpdateBook replaces every field of book id with dto. A lost version race is
// reported as not found when the book is gone, as a conflict otherwise.
func (s *BookService) UpdateBook(ctx context.Context, id int, dto model.BookDetailDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}
	if dto.ID != id {
		return model.ErrIDMismatch
	}

	err := s.uow.WithinTx(ctx, func(r repository.Repositories) error {
		existing, err := r.Books.GetByExternalID(ctx, id)
		if err != nil {
			return err
		}

		replacement, err := model.ToEntity(ctx, r.Authors, dto)
		if err != nil {
			return err
		}

		existing.ApplyReplacement(replacement)
		return r.Books.Replace(ctx, existing)
	})
	if errors.Is(err, model.ErrConcurrencyConflict) {
		return s.resolveConflict(ctx, id)
	}
	if err != nil {
		return s.fault("update book", id, err)
	}
	return nil
}

// resolveConflict re-reads in a fresh unit of work; the failed one is already rolled back.
func (s *BookService) resolveConflict(ctx context.Context, id int) error {
	var exists bool
	err := s.uow.WithinTx(ctx, func(r repository.Repositories) error {
		var err error
		exists, err = r.Books.ExistsByExternalID(ctx, id)
		return err
	})
	if err != nil {
		return s.fault("re-check book after conflict", id, err)
	}

	if !exists {
		return model.ErrBookNotFound
	}

	log.Warn().Int("book_id", id).Msg("concurrent modification detected")
	return model.ErrConcurrencyConflict
}

func (s *BookService) DeleteBook(ctx context.Context, id int) error {
	err := s.uow.WithinTx(ctx, func(r repository.Repositories) error {
		return r.Books.Delete(ctx, id)
	})
	if err != nil {
		return s.fault("delete book", id, err)
	}
	return nil
}

func (s *BookService) CountBooks(ctx context.Context) (int, error) {
	var n int
	err := s.uow.WithinTx(ctx, func(r repository.Repositories) error {
		var err error
		n, err = r.Books.Count(ctx)
		return err
	})
	if err != nil {
		return 0, s.fault("count books", 0, err)
	}
	return n, nil
}

func (s *BookService) get(ctx context.Context, id int) (*model.Book, error) {
	var b *model.Book
	err := s.uow.WithinTx(ctx, func(r repository.Repositories) error {
		var err error
		b, err = r.Books.GetByExternalID(ctx, id)
		return err
	})
	return b, err
}

// fault logs store faults and passes domain errors through untouched.
func (s *BookService) fault(op string, id int, err error) error {
	if status, _ := model.ToHTTPStatus(err); status < http.StatusInternalServerError {
		return err
	}

	event := log.Error().Err(err).Str("op", op)
	if id != 0 {
		event = event.Int("book_id", id)
	}
	event.Msg("book store fault")
	return fmt.Errorf("%s: %w", op, err)
}
