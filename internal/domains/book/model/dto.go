package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// BookSummaryDTO is the listing view of a book.
type BookSummaryDTO struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
}

// BookDetailDTO is the full wire representation. It is both the create/replace
// request body and the detail response.
type BookDetailDTO struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Genre       string          `json:"genre"`
	PublishDate PublishDate     `json:"publishDate"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Author      string          `json:"author"`
}

// price is stored as NUMERIC(18,2)
const priceScale = 2

var maxPrice = decimal.New(1, 16)

func (r BookDetailDTO) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.ID,
			validation.Required.Error("id is required"),
			validation.Min(1).Error("id must be positive"),
		),
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.By(func(interface{}) error {
				if strings.TrimSpace(r.Title) == "" {
					return errors.New("title must not be blank")
				}
				return nil
			}),
			validation.Length(1, 255),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
		),
		validation.Field(&r.PublishDate,
			validation.By(func(interface{}) error {
				if r.PublishDate.IsZero() {
					return errors.New("publishDate is required")
				}
				return nil
			}),
		),
		validation.Field(&r.Price,
			validation.By(func(interface{}) error {
				switch {
				case r.Price.IsNegative():
					return errors.New("price must not be negative")
				case !r.Price.Equal(r.Price.Truncate(priceScale)):
					return fmt.Errorf("price must have at most %d decimal places", priceScale)
				case r.Price.GreaterThanOrEqual(maxPrice):
					return fmt.Errorf("price must be less than %s", maxPrice)
				}
				return nil
			}),
		),
	)
	if err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// publishDateLayouts are tried in order. Layouts without a zone are read as UTC.
var publishDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// PublishDate accepts a full timestamp or a bare date on input and is always
// written as RFC 3339 in UTC.
type PublishDate struct {
	time.Time
}

func NewPublishDate(t time.Time) PublishDate {
	return PublishDate{Time: t.UTC()}
}

// ParsePublishDate parses any of the accepted publish date layouts.
func ParsePublishDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range publishDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid publish date %q", s)
}

func (d PublishDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.UTC().Format(time.RFC3339))
}

func (d *PublishDate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("publishDate must be a string: %w", err)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	t, err := ParsePublishDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
