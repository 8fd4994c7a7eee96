package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookColumns = `id, title, author, isbn, price, description, cover_image, is_deleted, created_at, updated_at`

func scanBook(row interface{ Scan(...any) error }) (Book, error) {
	var b Book
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.Isbn,
		&b.Price,
		&b.Description,
		&b.CoverImage,
		&b.IsDeleted,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}

const insertBook = `
INSERT INTO books (title, author, isbn, price, description, cover_image)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + bookColumns

type InsertBookParams struct {
	Title       string
	Author      string
	Isbn        string
	Price       pgtype.Numeric
	Description pgtype.Text
	CoverImage  pgtype.Text
}

func (q *Queries) InsertBook(c context.Context, arg InsertBookParams) (Book, error) {
	row := q.db.QueryRow(c, insertBook,
		arg.Title,
		arg.Author,
		arg.Isbn,
		arg.Price,
		arg.Description,
		arg.CoverImage,
	)
	return scanBook(row)
}

const findBookById = `
SELECT ` + bookColumns + `
FROM books
WHERE id = $1 AND NOT is_deleted
`

func (q *Queries) FindBookById(c context.Context, id uuid.UUID) (Book, error) {
	return scanBook(q.db.QueryRow(c, findBookById, id))
}

const findBooks = `
SELECT ` + bookColumns + `
FROM books
WHERE NOT is_deleted
ORDER BY created_at
LIMIT $1 OFFSET $2
`

type FindBooksParams struct {
	Limit  int32
	Offset int32
}

func (q *Queries) FindBooks(c context.Context, arg FindBooksParams) ([]Book, error) {
	rows, err := q.db.Query(c, findBooks, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var books []Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

const searchBooks = `
SELECT ` + bookColumns + `
FROM books
WHERE NOT is_deleted
  AND ($1::text IS NULL OR title ILIKE '%' || $1 || '%')
  AND (cardinality($2::text[]) = 0 OR author = ANY ($2::text[]))
  AND ($3::numeric IS NULL OR price >= $3)
  AND ($4::numeric IS NULL OR price <= $4)
ORDER BY created_at
LIMIT $5 OFFSET $6
`

type SearchBooksParams struct {
	Title    pgtype.Text
	Authors  []string
	MinPrice pgtype.Numeric
	MaxPrice pgtype.Numeric
	Limit    int32
	Offset   int32
}

func (q *Queries) SearchBooks(c context.Context, arg SearchBooksParams) ([]Book, error) {
	authors := arg.Authors
	if authors == nil {
		authors = []string{}
	}
	rows, err := q.db.Query(c, searchBooks,
		arg.Title,
		authors,
		arg.MinPrice,
		arg.MaxPrice,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var books []Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

const updateBook = `
UPDATE books
SET title = $2,
    author = $3,
    isbn = $4,
    price = $5,
    description = $6,
    cover_image = $7,
    updated_at = now()
WHERE id = $1 AND NOT is_deleted
RETURNING ` + bookColumns

type UpdateBookParams struct {
	ID          uuid.UUID
	Title       string
	Author      string
	Isbn        string
	Price       pgtype.Numeric
	Description pgtype.Text
	CoverImage  pgtype.Text
}

func (q *Queries) UpdateBook(c context.Context, arg UpdateBookParams) (Book, error) {
	row := q.db.QueryRow(c, updateBook,
		arg.ID,
		arg.Title,
		arg.Author,
		arg.Isbn,
		arg.Price,
		arg.Description,
		arg.CoverImage,
	)
	return scanBook(row)
}

const softDeleteBook = `
UPDATE books
SET is_deleted = true, updated_at = now()
WHERE id = $1 AND NOT is_deleted
`

func (q *Queries) SoftDeleteBook(c context.Context, id uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(c, softDeleteBook, id)
	return tag.RowsAffected(), err
}

const insertBookCategory = `
INSERT INTO book_categories (book_id, category_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING
`

type InsertBookCategoryParams struct {
	BookID     uuid.UUID
	CategoryID uuid.UUID
}

func (q *Queries) InsertBookCategory(c context.Context, arg InsertBookCategoryParams) error {
	_, err := q.db.Exec(c, insertBookCategory, arg.BookID, arg.CategoryID)
	return err
}

const deleteBookCategories = `
DELETE FROM book_categories WHERE book_id = $1
`

func (q *Queries) DeleteBookCategories(c context.Context, bookID uuid.UUID) error {
	_, err := q.db.Exec(c, deleteBookCategories, bookID)
	return err
}

const findCategoriesByBookId = `
SELECT c.id, c.name, c.description, c.is_deleted, c.created_at, c.updated_at
FROM book_categories bc
JOIN categories c ON c.id = bc.category_id
WHERE bc.book_id = $1 AND NOT c.is_deleted
ORDER BY c.name
`

func (q *Queries) FindCategoriesByBookId(c context.Context, bookID uuid.UUID) ([]Category, error) {
	rows, err := q.db.Query(c, findCategoriesByBookId, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var categories []Category
	for rows.Next() {
		var ct Category
		err := rows.Scan(&ct.ID, &ct.Name, &ct.Description, &ct.IsDeleted, &ct.CreatedAt, &ct.UpdatedAt)
		if err != nil {
			return nil, err
		}
		categories = append(categories, ct)
	}
	return categories, rows.Err()
}
