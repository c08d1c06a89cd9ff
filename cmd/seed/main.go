// Command seed creates the catalog tables if needed and loads the reference
// authors and books. Rows that already exist are left alone.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"books-api/internal/config"
	authormodel "books-api/internal/domains/author/model"
	"books-api/internal/infrastructure/database"
	"books-api/pkg/logger"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type bookRow struct {
	ExternalID  int             `db:"external_id"`
	Title       string          `db:"title"`
	Price       decimal.Decimal `db:"price"`
	Genre       *string         `db:"genre"`
	PublishDate time.Time       `db:"publish_date"`
	Description *string         `db:"description"`
	AuthorID    uuid.UUID       `db:"author_id"`
}

func main() {
	_ = godotenv.Load()

	env := os.Getenv("APP_ENV")
	logger.Init(env, os.Getenv("LOG_LEVEL"))

	dbCfg, err := config.LoadDatabaseConfig(env)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid database config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", dbCfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	inserted, err := seed(ctx, db)
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Int("books_inserted", inserted).Msg("seed complete")
}

// seed runs in one transaction and returns how many books were inserted.
func seed(ctx context.Context, db *sqlx.DB) (int, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, database.Schema); err != nil {
		return 0, fmt.Errorf("apply schema: %w", err)
	}

	for _, name := range seedAuthors {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO authors (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return 0, fmt.Errorf("insert author %q: %w", name, err)
		}
	}

	var authors []authormodel.Author
	if err := tx.SelectContext(ctx, &authors, `SELECT id, name FROM authors`); err != nil {
		return 0, fmt.Errorf("load authors: %w", err)
	}
	authorIDs := make(map[string]uuid.UUID, len(authors))
	for _, a := range authors {
		authorIDs[a.Name] = a.ID
	}

	rows, err := buildBookRows(seedBooks, authorIDs)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, row := range rows {
		res, err := tx.NamedExecContext(ctx, `
			INSERT INTO books (external_id, title, price, genre, publish_date, description, author_id)
			VALUES (:external_id, :title, :price, :genre, :publish_date, :description, :author_id)
			ON CONFLICT (external_id) DO NOTHING`, row)
		if err != nil {
			return 0, fmt.Errorf("insert book %d: %w", row.ExternalID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

func buildBookRows(books []seedBook, authorIDs map[string]uuid.UUID) ([]bookRow, error) {
	rows := make([]bookRow, 0, len(books))
	for _, b := range books {
		authorID, ok := authorIDs[b.Author]
		if !ok {
			return nil, fmt.Errorf("book %d: unknown author %q", b.ExternalID, b.Author)
		}
		price, err := b.price()
		if err != nil {
			return nil, fmt.Errorf("book %d: %w", b.ExternalID, err)
		}
		published, err := b.publishDate()
		if err != nil {
			return nil, fmt.Errorf("book %d: %w", b.ExternalID, err)
		}

		genre, description := b.Genre, b.Description
		rows = append(rows, bookRow{
			ExternalID:  b.ExternalID,
			Title:       b.Title,
			Price:       price,
			Genre:       &genre,
			PublishDate: published,
			Description: &description,
			AuthorID:    authorID,
		})
	}
	return rows, nil
}
