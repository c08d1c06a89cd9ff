package testutil

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"books-api/internal/domains/book/model"
	"books-api/internal/domains/book/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_FaultAndHookCanChangeWhileInUse(t *testing.T) {
	store := NewMemoryStore()
	store.AddAuthor("Ralls, Kim")
	store.AddBook("Ralls, Kim", model.Book{ExternalID: 103, Title: "Maeve Ascendant", PublishDate: time.Now()})

	fault := errors.New("connection reset by peer")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.SetFault(fault)
			store.OnReplace(func(model.Book) {})
			store.SetFault(nil)
			store.OnReplace(nil)
		}()
		go func() {
			defer wg.Done()
			_ = store.WithinTx(ctx, func(r repository.Repositories) error {
				b, err := r.Books.GetByExternalID(ctx, 103)
				if err != nil {
					return err
				}
				if _, err := r.Books.List(ctx, nil); err != nil {
					return err
				}
				return r.Books.Replace(ctx, b)
			})
		}()
	}
	wg.Wait()

	store.SetFault(nil)
	store.OnReplace(nil)
	_, ok := store.Book(103)
	assert.True(t, ok)
}

func TestMemoryStore_SetFault(t *testing.T) {
	store := NewMemoryStore()
	fault := errors.New("disk full")
	store.SetFault(fault)
	ctx := context.Background()

	err := store.WithinTx(ctx, func(r repository.Repositories) error {
		_, err := r.Books.Count(ctx)
		return err
	})
	assert.ErrorIs(t, err, fault)

	store.SetFault(nil)
	err = store.WithinTx(ctx, func(r repository.Repositories) error {
		n, err := r.Books.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
		return nil
	})
	assert.NoError(t, err)
}
