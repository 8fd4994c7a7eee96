package service

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/RedArtelerist/OnlineBookStore/book/pkg/request"
	"github.com/RedArtelerist/OnlineBookStore/internal/repository"
)

// mergeBook applies a patch onto the stored book. Nil patch fields keep the
// stored value; non-nil fields replace it, including replacement with the
// empty string.
func mergeBook(book repository.Book, patch request.UpdateBook) repository.UpdateBookParams {
	params := repository.UpdateBookParams{
		ID:          book.ID,
		Title:       book.Title,
		Author:      book.Author,
		Isbn:        book.Isbn,
		Price:       book.Price,
		Description: book.Description,
		CoverImage:  book.CoverImage,
	}
	if patch.Title != nil {
		params.Title = *patch.Title
	}
	if patch.Author != nil {
		params.Author = *patch.Author
	}
	if patch.Isbn != nil {
		params.Isbn = *patch.Isbn
	}
	if patch.Price != nil {
		params.Price = repository.NumericFromDecimal(*patch.Price)
	}
	if patch.Description != nil {
		params.Description = pgtype.Text{String: *patch.Description, Valid: true}
	}
	if patch.CoverImage != nil {
		params.CoverImage = pgtype.Text{String: *patch.CoverImage, Valid: true}
	}
	return params
}
