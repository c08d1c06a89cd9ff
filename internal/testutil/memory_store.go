// Package testutil provides an in-memory book store that honours the same
// contracts as the PostgreSQL repositories: unique external ids, author
// foreign keys and version-checked replaces.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	authormodel "books-api/internal/domains/author/model"
	"books-api/internal/domains/book/model"
	"books-api/internal/domains/book/repository"

	"github.com/google/uuid"
)

// MemoryStore implements repository.UnitOfWork. Writes apply immediately;
// every service operation issues at most one write, so there is nothing to roll back.
type MemoryStore struct {
	mu      sync.Mutex
	authors []authormodel.Author
	books   map[uuid.UUID]model.Book

	beforeReplace func(b model.Book)
	fault         error

	txCount atomic.Int64
}

var _ repository.UnitOfWork = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{books: make(map[uuid.UUID]model.Book)}
}

// AddAuthor registers an author. Duplicate names are allowed so ambiguity can be tested.
func (s *MemoryStore) AddAuthor(name string) authormodel.Author {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := authormodel.Author{ID: uuid.New(), Name: name}
	s.authors = append(s.authors, a)
	return a
}

// AddBook stores b under the first author called authorName and returns the stored copy.
func (s *MemoryStore) AddBook(authorName string, b model.Book) model.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	author, ok := s.authorByNameLocked(authorName)
	if !ok {
		panic(fmt.Sprintf("testutil: unknown author %q", authorName))
	}
	b.ID = uuid.New()
	b.Version = 1
	b.AuthorID = author.ID
	b.AuthorName = author.Name
	s.books[b.ID] = b
	return b
}

// Book returns the stored row for externalID, bypassing any unit of work.
func (s *MemoryStore) Book(externalID int) (model.Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.byExternalIDLocked(externalID)
	if !ok {
		return model.Book{}, false
	}
	return s.withAuthorLocked(b), true
}

// OnReplace installs a hook that runs at the start of every Replace, outside
// the store lock. nil removes it.
func (s *MemoryStore) OnReplace(fn func(b model.Book)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.beforeReplace = fn
}

// SetFault makes every repository call return err. nil clears it.
func (s *MemoryStore) SetFault(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fault = err
}

// TxCount is the number of units of work opened so far.
func (s *MemoryStore) TxCount() int {
	return int(s.txCount.Load())
}

func (s *MemoryStore) WithinTx(ctx context.Context, fn func(repository.Repositories) error) error {
	s.txCount.Add(1)
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(repository.Repositories{
		Books:   &memoryBooks{store: s},
		Authors: &memoryAuthors{store: s},
	})
}

func (s *MemoryStore) authorByNameLocked(name string) (authormodel.Author, bool) {
	for _, a := range s.authors {
		if a.Name == name {
			return a, true
		}
	}
	return authormodel.Author{}, false
}

func (s *MemoryStore) authorExistsLocked(id uuid.UUID) bool {
	for _, a := range s.authors {
		if a.ID == id {
			return true
		}
	}
	return false
}

func (s *MemoryStore) byExternalIDLocked(externalID int) (model.Book, bool) {
	for _, b := range s.books {
		if b.ExternalID == externalID {
			return b, true
		}
	}
	return model.Book{}, false
}

// withAuthorLocked fills AuthorName the way the SQL join does.
func (s *MemoryStore) withAuthorLocked(b model.Book) model.Book {
	for _, a := range s.authors {
		if a.ID == b.AuthorID {
			b.AuthorName = a.Name
			break
		}
	}
	return b
}

type memoryAuthors struct {
	store *MemoryStore
}

func (r *memoryAuthors) FindByName(_ context.Context, name string) ([]authormodel.Author, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fault != nil {
		return nil, s.fault
	}

	var out []authormodel.Author
	for _, a := range s.authors {
		if a.Name == name {
			out = append(out, a)
		}
	}
	return out, nil
}

type memoryBooks struct {
	store *MemoryStore
}

func (r *memoryBooks) Insert(_ context.Context, b *model.Book) (uuid.UUID, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fault != nil {
		return uuid.Nil, s.fault
	}

	if _, taken := s.byExternalIDLocked(b.ExternalID); taken {
		return uuid.Nil, model.ErrDuplicateExternalID
	}
	if !s.authorExistsLocked(b.AuthorID) {
		return uuid.Nil, model.ErrAuthorNotFound
	}

	b.ID = uuid.New()
	b.Version = 1
	s.books[b.ID] = *b
	return b.ID, nil
}

func (r *memoryBooks) GetByExternalID(_ context.Context, externalID int) (*model.Book, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fault != nil {
		return nil, s.fault
	}

	b, ok := s.byExternalIDLocked(externalID)
	if !ok {
		return nil, model.ErrBookNotFound
	}
	b = s.withAuthorLocked(b)
	return &b, nil
}

func (r *memoryBooks) List(_ context.Context, dates *model.DateRange) ([]model.Book, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fault != nil {
		return nil, s.fault
	}

	out := make([]model.Book, 0, len(s.books))
	for _, b := range s.books {
		if dates != nil && !dates.Contains(b.PublishDate) {
			continue
		}
		out = append(out, s.withAuthorLocked(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExternalID < out[j].ExternalID })
	return out, nil
}

func (r *memoryBooks) Replace(_ context.Context, b *model.Book) error {
	s := r.store
	s.mu.Lock()
	hook := s.beforeReplace
	s.mu.Unlock()
	if hook != nil {
		hook(*b)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fault != nil {
		return s.fault
	}

	current, ok := s.books[b.ID]
	if !ok || current.Version != b.Version {
		return model.ErrConcurrencyConflict
	}
	if other, taken := s.byExternalIDLocked(b.ExternalID); taken && other.ID != b.ID {
		return model.ErrDuplicateExternalID
	}
	if !s.authorExistsLocked(b.AuthorID) {
		return model.ErrAuthorNotFound
	}

	b.Version++
	s.books[b.ID] = *b
	return nil
}

func (r *memoryBooks) Delete(_ context.Context, externalID int) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fault != nil {
		return s.fault
	}

	b, ok := s.byExternalIDLocked(externalID)
	if !ok {
		return model.ErrBookNotFound
	}
	delete(s.books, b.ID)
	return nil
}

func (r *memoryBooks) ExistsByExternalID(_ context.Context, externalID int) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fault != nil {
		return false, s.fault
	}

	_, ok := s.byExternalIDLocked(externalID)
	return ok, nil
}

func (r *memoryBooks) Count(_ context.Context) (int, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fault != nil {
		return 0, s.fault
	}

	return len(s.books), nil
}
