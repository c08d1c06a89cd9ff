package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"books-api/internal/domains/book/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projection = `SELECT "b"."id", "b"."external_id", "b"."title", "b"."price", "b"."genre", "b"."publish_date", ` +
	`"b"."description", "b"."author_id", "b"."version", "a"."name" AS "author_name" ` +
	`FROM "books" AS "b" INNER JOIN "authors" AS "a" ON ("a"."id" = "b"."author_id")`

func TestSelectByExternalIDQuery(t *testing.T) {
	query, args, err := selectByExternalIDQuery(103)
	require.NoError(t, err)

	assert.Equal(t, projection+` WHERE ("b"."external_id" = $1)`, query)
	require.Len(t, args, 1)
	assert.EqualValues(t, 103, args[0])
}

func TestSelectListQuery_All(t *testing.T) {
	query, args, err := selectListQuery(nil)
	require.NoError(t, err)

	assert.Equal(t, projection+` ORDER BY "b"."external_id" ASC`, query)
	assert.Empty(t, args)
}

func TestSelectListQuery_DateRange(t *testing.T) {
	day := model.DayRange(time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC))

	query, args, err := selectListQuery(&day)
	require.NoError(t, err)

	assert.Contains(t, query, projection)
	assert.Contains(t, query, `"b"."publish_date" >= $1`)
	assert.Contains(t, query, `"b"."publish_date" < $2`)
	assert.Contains(t, query, `ORDER BY "b"."external_id" ASC`)

	require.Len(t, args, 2)
	from, ok := args[0].(time.Time)
	require.True(t, ok)
	to, ok := args[1].(time.Time)
	require.True(t, ok)
	assert.True(t, day.From.Equal(from))
	assert.True(t, day.To.Equal(to))
}

func testBook() *model.Book {
	genre := "Testing"
	return &model.Book{
		ID:          uuid.MustParse("6f1c1d7e-3f9f-4a8e-9d6a-1f6f3b0e2c11"),
		ExternalID:  105,
		Title:       "Integration testing",
		Price:       decimal.RequireFromString("100.1"),
		Genre:       &genre,
		PublishDate: time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC),
		AuthorID:    uuid.MustParse("0b7e5c8a-4f3d-4a51-8a52-9f7d1c2b3a44"),
		Version:     3,
	}
}

func TestInsertBookQuery(t *testing.T) {
	query, args, err := insertBookQuery(testBook())
	require.NoError(t, err)

	assert.Contains(t, query, `INSERT INTO "books"`)
	assert.Contains(t, query, `RETURNING "id", "version"`)
	assert.Contains(t, args, "Integration testing")
	assert.Contains(t, args, "100.1")
}

func TestReplaceBookQuery_ChecksVersion(t *testing.T) {
	b := testBook()

	query, args, err := replaceBookQuery(b)
	require.NoError(t, err)

	assert.Contains(t, query, `UPDATE "books" SET`)
	assert.Contains(t, query, `"version"="version" + 1`)
	assert.Contains(t, query, `("id" = $`)
	assert.Contains(t, query, `("version" = $`)
	assert.NotContains(t, query, "RETURNING")

	require.NotEmpty(t, args)
	assert.EqualValues(t, 3, args[len(args)-1], "last argument is the expected version")
	assert.Equal(t, b.ID.String(), args[len(args)-2])
}

func TestDeleteByExternalIDQuery(t *testing.T) {
	query, args, err := deleteByExternalIDQuery(103)
	require.NoError(t, err)

	assert.Equal(t, `DELETE FROM "books" WHERE ("external_id" = $1)`, query)
	require.Len(t, args, 1)
	assert.EqualValues(t, 103, args[0])
}

func TestCountQuery(t *testing.T) {
	query, args, err := countQuery(nil)
	require.NoError(t, err)
	assert.Equal(t, `SELECT COUNT(*) FROM "books"`, query)
	assert.Empty(t, args)

	id := 103
	query, args, err = countQuery(&id)
	require.NoError(t, err)
	assert.Equal(t, `SELECT COUNT(*) FROM "books" WHERE ("external_id" = $1)`, query)
	require.Len(t, args, 1)
	assert.EqualValues(t, 103, args[0])
}

func TestClassifyWriteError(t *testing.T) {
	unique := fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505", ConstraintName: "idx_books_external_id"})
	assert.ErrorIs(t, classifyWriteError("insert book", unique), model.ErrDuplicateExternalID)

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "books_author_id_fkey"}
	assert.ErrorIs(t, classifyWriteError("update book", fk), model.ErrAuthorNotFound)

	other := errors.New("connection reset by peer")
	err := classifyWriteError("insert book", other)
	assert.ErrorIs(t, err, other)
	assert.Contains(t, err.Error(), "failed to insert book")
}
