package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/RedArtelerist/OnlineBookStore/book/pkg/request"
	"github.com/RedArtelerist/OnlineBookStore/internal/repository"
)

func TestMergeBookKeepsStoredValuesForNilFields(t *testing.T) {
	book := repository.Book{
		ID:          uuid.New(),
		Title:       "The Go Programming Language",
		Author:      "Alan Donovan",
		Isbn:        "978-0134190440",
		Price:       repository.NumericFromDecimal(decimal.RequireFromString("12.50")),
		Description: pgtype.Text{String: "Reference", Valid: true},
	}

	params := mergeBook(book, request.UpdateBook{})

	assert.EqualValues(t, book.ID, params.ID)
	assert.EqualValues(t, book.Title, params.Title)
	assert.EqualValues(t, book.Author, params.Author)
	assert.EqualValues(t, book.Isbn, params.Isbn)
	assert.EqualValues(t, book.Price, params.Price)
	assert.EqualValues(t, book.Description, params.Description)
}

func TestMergeBookReplacesNonNilFields(t *testing.T) {
	book := repository.Book{
		ID:          uuid.New(),
		Title:       "The Go Programming Language",
		Author:      "Alan Donovan",
		Isbn:        "978-0134190440",
		Price:       repository.NumericFromDecimal(decimal.RequireFromString("12.50")),
		Description: pgtype.Text{String: "Reference", Valid: true},
	}

	title := "The Go Programming Language, Second Edition"
	price := decimal.RequireFromString("59.99")
	emptyDescription := ""
	params := mergeBook(book, request.UpdateBook{
		Title:       &title,
		Price:       &price,
		Description: &emptyDescription,
	})

	assert.EqualValues(t, title, params.Title)
	assert.EqualValues(t, book.Author, params.Author)
	assert.EqualValues(t, repository.NumericFromDecimal(price), params.Price)
	assert.EqualValues(t, pgtype.Text{String: "", Valid: true}, params.Description)
}
