package service

import (
	"context"
	"time"

	"books-api/internal/domains/book/model"
)

// ServiceInterface - business logic cho books, addressed by external id
type ServiceInterface interface {
	ListBooks(ctx context.Context) ([]model.BookSummaryDTO, error)
	GetBook(ctx context.Context, id int) (*model.BookSummaryDTO, error)
	GetBookDetail(ctx context.Context, id int) (*model.BookDetailDTO, error)
	GetBooksByDate(ctx context.Context, date time.Time) ([]model.BookSummaryDTO, error)
	CreateBook(ctx context.Context, dto model.BookDetailDTO) (*model.BookDetailDTO, error)
	UpdateBook(ctx context.Context, id int, dto model.BookDetailDTO) error
	DeleteBook(ctx context.Context, id int) error
	CountBooks(ctx context.Context) (int, error)
}
