package repository

import (
	"context"

	authorrepo "books-api/internal/domains/author/repository"
	"books-api/pkg/database"

	"github.com/jackc/pgx/v5"
)

// PostgresUnitOfWork opens one pgx transaction per WithinTx call and hands
// fn repositories bound to it.
type PostgresUnitOfWork struct {
	db database.TxBeginner
}

func NewPostgresUnitOfWork(db database.TxBeginner) *PostgresUnitOfWork {
	return &PostgresUnitOfWork{db: db}
}

func (u *PostgresUnitOfWork) WithinTx(ctx context.Context, fn func(Repositories) error) error {
	return database.WithTransaction(ctx, u.db, func(tx pgx.Tx) error {
		return fn(Repositories{
			Books:   NewPostgresRepository(tx),
			Authors: authorrepo.NewPostgresRepository(tx),
		})
	})
}
