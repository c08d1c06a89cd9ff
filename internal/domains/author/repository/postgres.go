package repository

import (
	"context"
	"fmt"

	"books-api/internal/domains/author/model"
	"books-api/pkg/database"

	"github.com/jackc/pgx/v5"
)

// PostgresRepository reads authors through whatever DBTX it was built on:
// the pool, or the transaction of the caller's unit of work.
type PostgresRepository struct {
	db database.DBTX
}

func NewPostgresRepository(db database.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByName returns the authors whose name matches exactly. At most two rows
// are read since the caller only needs to know whether the name is unique.
func (r *PostgresRepository) FindByName(ctx context.Context, name string) ([]model.Author, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM authors WHERE name = $1 LIMIT 2`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find author by name: %w", err)
	}

	authors, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Author])
	if err != nil {
		return nil, fmt.Errorf("failed to scan authors: %w", err)
	}
	return authors, nil
}
