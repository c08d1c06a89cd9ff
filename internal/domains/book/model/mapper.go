package model

import (
	"context"
	"fmt"

	authormodel "books-api/internal/domains/author/model"
)

// AuthorLookup resolves an author name. Implementations must run inside the
// unit of work of the write that needs the author.
type AuthorLookup interface {
	FindByName(ctx context.Context, name string) ([]authormodel.Author, error)
}

// ToEntity maps a request DTO onto a new Book, resolving the author by exact name.
// ID and Version are left zero.
func ToEntity(ctx context.Context, authors AuthorLookup, dto BookDetailDTO) (*Book, error) {
	found, err := authors.FindByName(ctx, dto.Author)
	if err != nil {
		return nil, fmt.Errorf("resolve author %q: %w", dto.Author, err)
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrAuthorNotFound, dto.Author)
	case 1:
	default:
		return nil, fmt.Errorf("%w: %q", ErrAmbiguousAuthor, dto.Author)
	}

	return &Book{
		ExternalID:  dto.ID,
		Title:       dto.Title,
		Price:       dto.Price,
		Genre:       optional(dto.Genre),
		PublishDate: dto.PublishDate.UTC(),
		Description: optional(dto.Description),
		AuthorID:    found[0].ID,
		AuthorName:  found[0].Name,
	}, nil
}

func ToSummary(b Book) BookSummaryDTO {
	return BookSummaryDTO{
		ID:     b.ExternalID,
		Title:  b.Title,
		Author: b.AuthorName,
		Genre:  deref(b.Genre),
	}
}

// ToSummaries never returns nil so an empty result encodes as [].
func ToSummaries(books []Book) []BookSummaryDTO {
	out := make([]BookSummaryDTO, 0, len(books))
	for _, b := range books {
		out = append(out, ToSummary(b))
	}
	return out
}

func ToDetail(b Book) BookDetailDTO {
	return BookDetailDTO{
		ID:          b.ExternalID,
		Title:       b.Title,
		Genre:       deref(b.Genre),
		PublishDate: NewPublishDate(b.PublishDate),
		Price:       b.Price,
		Description: deref(b.Description),
		Author:      b.AuthorName,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
