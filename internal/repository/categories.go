package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const categoryColumns = `id, name, description, is_deleted, created_at, updated_at`

func scanCategory(row interface{ Scan(...any) error }) (Category, error) {
	var ct Category
	err := row.Scan(
		&ct.ID,
		&ct.Name,
		&ct.Description,
		&ct.IsDeleted,
		&ct.CreatedAt,
		&ct.UpdatedAt,
	)
	return ct, err
}

const insertCategory = `
INSERT INTO categories (name, description)
VALUES ($1, $2)
RETURNING ` + categoryColumns

type InsertCategoryParams struct {
	Name        string
	Description pgtype.Text
}

func (q *Queries) InsertCategory(c context.Context, arg InsertCategoryParams) (Category, error) {
	return scanCategory(q.db.QueryRow(c, insertCategory, arg.Name, arg.Description))
}

const findCategories = `
SELECT ` + categoryColumns + `
FROM categories
WHERE NOT is_deleted
ORDER BY name
`

func (q *Queries) FindCategories(c context.Context) ([]Category, error) {
	rows, err := q.db.Query(c, findCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var categories []Category
	for rows.Next() {
		ct, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, ct)
	}
	return categories, rows.Err()
}

const findCategoryById = `
SELECT ` + categoryColumns + `
FROM categories
WHERE id = $1 AND NOT is_deleted
`

func (q *Queries) FindCategoryById(c context.Context, id uuid.UUID) (Category, error) {
	return scanCategory(q.db.QueryRow(c, findCategoryById, id))
}

const findCategoriesByIds = `
SELECT ` + categoryColumns + `
FROM categories
WHERE id = ANY ($1::uuid[]) AND NOT is_deleted
`

func (q *Queries) FindCategoriesByIds(c context.Context, ids []uuid.UUID) ([]Category, error) {
	rows, err := q.db.Query(c, findCategoriesByIds, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var categories []Category
	for rows.Next() {
		ct, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, ct)
	}
	return categories, rows.Err()
}

const updateCategory = `
UPDATE categories
SET name = $2, description = $3, updated_at = now()
WHERE id = $1 AND NOT is_deleted
RETURNING ` + categoryColumns

type UpdateCategoryParams struct {
	ID          uuid.UUID
	Name        string
	Description pgtype.Text
}

func (q *Queries) UpdateCategory(c context.Context, arg UpdateCategoryParams) (Category, error) {
	return scanCategory(q.db.QueryRow(c, updateCategory, arg.ID, arg.Name, arg.Description))
}

const softDeleteCategory = `
UPDATE categories
SET is_deleted = true, updated_at = now()
WHERE id = $1 AND NOT is_deleted
`

func (q *Queries) SoftDeleteCategory(c context.Context, id uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(c, softDeleteCategory, id)
	return tag.RowsAffected(), err
}

const findBooksByCategoryId = `
SELECT b.id, b.title, b.author, b.isbn, b.price, b.description, b.cover_image, b.is_deleted, b.created_at, b.updated_at
FROM book_categories bc
JOIN books b ON b.id = bc.book_id
WHERE bc.category_id = $1 AND NOT b.is_deleted
ORDER BY b.title
`

func (q *Queries) FindBooksByCategoryId(c context.Context, categoryID uuid.UUID) ([]Book, error) {
	rows, err := q.db.Query(c, findBooksByCategoryId, categoryID)
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
