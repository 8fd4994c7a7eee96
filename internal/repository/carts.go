package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const upsertCart = `
INSERT INTO shopping_carts (id)
VALUES ($1)
ON CONFLICT (id) DO UPDATE SET updated_at = now(), is_deleted = false
RETURNING id, is_deleted, created_at, updated_at
`

// UpsertCart lazily creates the user's cart. The cart id is the user id.
func (q *Queries) UpsertCart(c context.Context, userID uuid.UUID) (ShoppingCart, error) {
	row := q.db.QueryRow(c, upsertCart, userID)
	var cart ShoppingCart
	err := row.Scan(&cart.ID, &cart.IsDeleted, &cart.CreatedAt, &cart.UpdatedAt)
	return cart, err
}

const findCartByUserId = `
SELECT id, is_deleted, created_at, updated_at
FROM shopping_carts
WHERE id = $1 AND NOT is_deleted
`

func (q *Queries) FindCartByUserId(c context.Context, userID uuid.UUID) (ShoppingCart, error) {
	row := q.db.QueryRow(c, findCartByUserId, userID)
	var cart ShoppingCart
	err := row.Scan(&cart.ID, &cart.IsDeleted, &cart.CreatedAt, &cart.UpdatedAt)
	return cart, err
}

const findCartItems = `
SELECT ci.id, ci.cart_id, ci.book_id, b.title AS book_title, b.price AS book_price, ci.quantity, ci.created_at, ci.updated_at
FROM cart_items ci
JOIN books b ON b.id = ci.book_id
WHERE ci.cart_id = $1
ORDER BY ci.created_at
`

type FindCartItemsRow struct {
	ID        uuid.UUID
	CartID    uuid.UUID
	BookID    uuid.UUID
	BookTitle string
	BookPrice pgtype.Numeric
	Quantity  int32
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

func (q *Queries) FindCartItems(c context.Context, cartID uuid.UUID) ([]FindCartItemsRow, error) {
	rows, err := q.db.Query(c, findCartItems, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []FindCartItemsRow
	for rows.Next() {
		var i FindCartItemsRow
		err := rows.Scan(
			&i.ID,
			&i.CartID,
			&i.BookID,
			&i.BookTitle,
			&i.BookPrice,
			&i.Quantity,
			&i.CreatedAt,
			&i.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const upsertCartItem = `
INSERT INTO cart_items (cart_id, book_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (cart_id, book_id)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()
RETURNING id, cart_id, book_id, quantity, created_at, updated_at
`

type UpsertCartItemParams struct {
	CartID   uuid.UUID
	BookID   uuid.UUID
	Quantity int32
}

// UpsertCartItem merges a repeated add of the same book into the existing
// row. The unique index on (cart_id, book_id) makes concurrent adds safe.
func (q *Queries) UpsertCartItem(c context.Context, arg UpsertCartItemParams) (CartItem, error) {
	row := q.db.QueryRow(c, upsertCartItem, arg.CartID, arg.BookID, arg.Quantity)
	var i CartItem
	err := row.Scan(&i.ID, &i.CartID, &i.BookID, &i.Quantity, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const updateCartItemQuantity = `
UPDATE cart_items
SET quantity = $3, updated_at = now()
WHERE id = $1 AND cart_id = $2
RETURNING id, cart_id, book_id, quantity, created_at, updated_at
`

type UpdateCartItemQuantityParams struct {
	ID       uuid.UUID
	CartID   uuid.UUID
	Quantity int32
}

// UpdateCartItemQuantity is ownership-scoped: the cart id is part of the
// predicate so items in another user's cart surface as no rows.
func (q *Queries) UpdateCartItemQuantity(
	c context.Context,
	arg UpdateCartItemQuantityParams,
) (CartItem, error) {
	row := q.db.QueryRow(c, updateCartItemQuantity, arg.ID, arg.CartID, arg.Quantity)
	var i CartItem
	err := row.Scan(&i.ID, &i.CartID, &i.BookID, &i.Quantity, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const deleteCartItem = `
DELETE FROM cart_items
WHERE id = $1 AND cart_id = $2
`

type DeleteCartItemParams struct {
	ID     uuid.UUID
	CartID uuid.UUID
}

func (q *Queries) DeleteCartItem(c context.Context, arg DeleteCartItemParams) (int64, error) {
	tag, err := q.db.Exec(c, deleteCartItem, arg.ID, arg.CartID)
	return tag.RowsAffected(), err
}

const deleteCartItems = `
DELETE FROM cart_items
WHERE cart_id = $1
`

func (q *Queries) DeleteCartItems(c context.Context, cartID uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(c, deleteCartItems, cartID)
	return tag.RowsAffected(), err
}
