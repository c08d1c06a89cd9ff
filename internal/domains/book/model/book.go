package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// price goes over the wire as a JSON number, not a quoted string
	decimal.MarshalJSONWithoutQuotes = true
}

// Book is the storage entity. ID is assigned by the database and never leaves
// the service; callers address books by ExternalID.
type Book struct {
	ID          uuid.UUID       `db:"id"`
	ExternalID  int             `db:"external_id"`
	Title       string          `db:"title"`
	Price       decimal.Decimal `db:"price"`
	Genre       *string         `db:"genre"`
	PublishDate time.Time       `db:"publish_date"`
	Description *string         `db:"description"`
	AuthorID    uuid.UUID       `db:"author_id"`
	Version     int             `db:"version"`

	// Populated by the author join on reads.
	AuthorName string `db:"author_name"`
}

// ApplyReplacement copies every caller-controlled field of r onto b.
// ID and Version stay untouched so the replace is checked against the row b was read from.
func (b *Book) ApplyReplacement(r *Book) {
	b.ExternalID = r.ExternalID
	b.Title = r.Title
	b.Price = r.Price
	b.Genre = r.Genre
	b.PublishDate = r.PublishDate
	b.Description = r.Description
	b.AuthorID = r.AuthorID
	b.AuthorName = r.AuthorName
}

// DateRange is a half-open publish date interval [From, To).
type DateRange struct {
	From time.Time
	To   time.Time
}

// DayRange returns the calendar day of t as a UTC range. The time of day is ignored.
func DayRange(t time.Time) DateRange {
	from := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return DateRange{From: from, To: from.AddDate(0, 0, 1)}
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && t.Before(r.To)
}
