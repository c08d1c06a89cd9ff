package main

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authorIndex() map[string]uuid.UUID {
	ids := make(map[string]uuid.UUID, len(seedAuthors))
	for _, name := range seedAuthors {
		ids[name] = uuid.New()
	}
	return ids
}

func TestSeedData(t *testing.T) {
	known := make(map[string]bool, len(seedAuthors))
	for _, name := range seedAuthors {
		assert.False(t, known[name], "duplicate author %q", name)
		known[name] = true
	}

	ids := make(map[int]bool, len(seedBooks))
	for _, b := range seedBooks {
		assert.False(t, ids[b.ExternalID], "duplicate external id %d", b.ExternalID)
		ids[b.ExternalID] = true
		assert.True(t, known[b.Author], "book %d has unknown author %q", b.ExternalID, b.Author)
	}
	assert.False(t, ids[105], "105 is reserved for new books")
}

func TestBuildBookRows(t *testing.T) {
	authorIDs := authorIndex()

	rows, err := buildBookRows(seedBooks, authorIDs)
	require.NoError(t, err)
	require.Len(t, rows, len(seedBooks))

	var maeve bookRow
	for _, r := range rows {
		if r.ExternalID == 103 {
			maeve = r
		}
	}
	assert.Equal(t, "Maeve Ascendant", maeve.Title)
	assert.Equal(t, authorIDs["Corets, Eva"], maeve.AuthorID)
	assert.True(t, decimal.RequireFromString("5.95").Equal(maeve.Price))
	assert.Equal(t, time.Date(2000, 11, 17, 0, 0, 0, 0, time.UTC), maeve.PublishDate)
	require.NotNil(t, maeve.Genre)
	assert.Equal(t, "Fantasy", *maeve.Genre)
}

func TestBuildBookRows_Errors(t *testing.T) {
	authorIDs := authorIndex()

	_, err := buildBookRows([]seedBook{{ExternalID: 900, Title: "X", Author: "Nobody", Price: "1", PublishDate: "2000-01-01"}}, authorIDs)
	assert.ErrorContains(t, err, "unknown author")

	_, err = buildBookRows([]seedBook{{ExternalID: 901, Title: "X", Author: "Ralls, Kim", Price: "cheap", PublishDate: "2000-01-01"}}, authorIDs)
	assert.ErrorContains(t, err, "book 901")

	_, err = buildBookRows([]seedBook{{ExternalID: 902, Title: "X", Author: "Ralls, Kim", Price: "1", PublishDate: "01/01/2000"}}, authorIDs)
	assert.ErrorContains(t, err, "book 902")
}
