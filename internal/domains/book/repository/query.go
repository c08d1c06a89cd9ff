package repository

import (
	"books-api/internal/domains/book/model"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // registers the postgres dialect
)

const (
	tableBooks   = "books"
	tableAuthors = "authors"

	colID          = "id"
	colExternalID  = "external_id"
	colTitle       = "title"
	colPrice       = "price"
	colGenre       = "genre"
	colPublishDate = "publish_date"
	colDescription = "description"
	colAuthorID    = "author_id"
	colVersion     = "version"
	colAuthorName  = "author_name"
)

var dialect = goqu.Dialect("postgres")

// bookProjection is the books JOIN authors select shared by every read.
// Column aliases match the db tags on model.Book.
func bookProjection() *goqu.SelectDataset {
	return dialect.
		From(goqu.T(tableBooks).As("b")).
		InnerJoin(
			goqu.T(tableAuthors).As("a"),
			goqu.On(goqu.I("a."+colID).Eq(goqu.I("b."+colAuthorID))),
		).
		Select(
			goqu.I("b."+colID),
			goqu.I("b."+colExternalID),
			goqu.I("b."+colTitle),
			goqu.I("b."+colPrice),
			goqu.I("b."+colGenre),
			goqu.I("b."+colPublishDate),
			goqu.I("b."+colDescription),
			goqu.I("b."+colAuthorID),
			goqu.I("b."+colVersion),
			goqu.I("a.name").As(colAuthorName),
		).
		Prepared(true)
}

func selectByExternalIDQuery(externalID int) (string, []interface{}, error) {
	return bookProjection().
		Where(goqu.I("b." + colExternalID).Eq(externalID)).
		ToSQL()
}

func selectListQuery(dates *model.DateRange) (string, []interface{}, error) {
	ds := bookProjection()
	if dates != nil {
		ds = ds.Where(
			goqu.I("b."+colPublishDate).Gte(dates.From),
			goqu.I("b."+colPublishDate).Lt(dates.To),
		)
	}
	return ds.Order(goqu.I("b." + colExternalID).Asc()).ToSQL()
}

func insertBookQuery(b *model.Book) (string, []interface{}, error) {
	return dialect.
		Insert(tableBooks).
		Rows(goqu.Record{
			colExternalID:  b.ExternalID,
			colTitle:       b.Title,
			colPrice:       b.Price,
			colGenre:       b.Genre,
			colPublishDate: b.PublishDate,
			colDescription: b.Description,
			colAuthorID:    b.AuthorID,
		}).
		Returning(colID, colVersion).
		Prepared(true).
		ToSQL()
}

// replaceBookQuery only matches the row while its version is still b.Version.
func replaceBookQuery(b *model.Book) (string, []interface{}, error) {
	return dialect.
		Update(tableBooks).
		Set(goqu.Record{
			colExternalID:  b.ExternalID,
			colTitle:       b.Title,
			colPrice:       b.Price,
			colGenre:       b.Genre,
			colPublishDate: b.PublishDate,
			colDescription: b.Description,
			colAuthorID:    b.AuthorID,
			colVersion:     goqu.L(`"version" + 1`),
		}).
		Where(
			goqu.C(colID).Eq(b.ID),
			goqu.C(colVersion).Eq(b.Version),
		).
		Prepared(true).
		ToSQL()
}

func deleteByExternalIDQuery(externalID int) (string, []interface{}, error) {
	return dialect.
		Delete(tableBooks).
		Where(goqu.C(colExternalID).Eq(externalID)).
		Prepared(true).
		ToSQL()
}

func countQuery(externalID *int) (string, []interface{}, error) {
	ds := dialect.From(tableBooks).Select(goqu.COUNT("*")).Prepared(true)
	if externalID != nil {
		ds = ds.Where(goqu.C(colExternalID).Eq(*externalID))
	}
	return ds.ToSQL()
}
