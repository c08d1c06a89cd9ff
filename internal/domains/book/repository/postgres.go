package repository

import (
	"context"
	"errors"
	"fmt"

	"books-api/internal/domains/book/model"
	"books-api/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// PostgresRepository implements RepositoryInterface over a pool or a transaction.
type PostgresRepository struct {
	db database.DBTX
}

func NewPostgresRepository(db database.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, b *model.Book) (uuid.UUID, error) {
	query, args, err := insertBookQuery(b)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&b.ID, &b.Version); err != nil {
		return uuid.Nil, classifyWriteError("insert book", err)
	}
	return b.ID, nil
}

func (r *PostgresRepository) GetByExternalID(ctx context.Context, externalID int) (*model.Book, error) {
	query, args, err := selectByExternalIDQuery(externalID)
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get book %d: %w", externalID, err)
	}

	b, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Book])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to scan book %d: %w", externalID, err)
	}
	return &b, nil
}

func (r *PostgresRepository) List(ctx context.Context, dates *model.DateRange) ([]model.Book, error) {
	query, args, err := selectListQuery(dates)
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	books, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Book])
	if err != nil {
		return nil, fmt.Errorf("failed to scan books: %w", err)
	}
	return books, nil
}

// Replace bumps b.Version on success. Zero affected rows means another writer
// got there first (or deleted the row); the caller decides which.
func (r *PostgresRepository) Replace(ctx context.Context, b *model.Book) error {
	query, args, err := replaceBookQuery(b)
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return classifyWriteError("update book", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrConcurrencyConflict
	}

	b.Version++
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, externalID int) error {
	query, args, err := deleteByExternalIDQuery(externalID)
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete book %d: %w", externalID, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *PostgresRepository) ExistsByExternalID(ctx context.Context, externalID int) (bool, error) {
	n, err := r.count(ctx, &externalID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx, nil)
}

func (r *PostgresRepository) count(ctx context.Context, externalID *int) (int, error) {
	query, args, err := countQuery(externalID)
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var n int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return n, nil
}

// classifyWriteError turns constraint violations into domain errors.
func classifyWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return model.ErrDuplicateExternalID
		case pgForeignKeyViolation:
			return model.ErrAuthorNotFound
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
