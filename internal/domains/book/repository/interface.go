package repository

import (
	"context"

	"books-api/internal/domains/book/model"

	"github.com/google/uuid"
)

// RepositoryInterface - data access cho books
type RepositoryInterface interface {
	// Insert stores b and fills in its ID and Version.
	Insert(ctx context.Context, b *model.Book) (uuid.UUID, error)
	GetByExternalID(ctx context.Context, externalID int) (*model.Book, error)
	// List returns books ordered by external id. A nil range means all books.
	List(ctx context.Context, dates *model.DateRange) ([]model.Book, error)
	// Replace overwrites the row if its version still equals b.Version,
	// otherwise it returns model.ErrConcurrencyConflict.
	Replace(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, externalID int) error
	ExistsByExternalID(ctx context.Context, externalID int) (bool, error)
	Count(ctx context.Context) (int, error)
}

// Repositories is the set of repositories bound to one unit of work.
type Repositories struct {
	Books   RepositoryInterface
	Authors model.AuthorLookup
}

// UnitOfWork scopes a group of repository calls to one transaction.
// fn returning an error rolls everything back.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(Repositories) error) error
}
