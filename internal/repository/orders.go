package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const orderColumns = `id, user_id, status, total, shipping_address, order_date, is_deleted, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (Order, error) {
	var o Order
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.Status,
		&o.Total,
		&o.ShippingAddress,
		&o.OrderDate,
		&o.IsDeleted,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}

const insertOrder = `
INSERT INTO orders (user_id, total, shipping_address)
VALUES ($1, $2, $3)
RETURNING ` + orderColumns

type InsertOrderParams struct {
	UserID          uuid.UUID
	Total           pgtype.Numeric
	ShippingAddress string
}

func (q *Queries) InsertOrder(c context.Context, arg InsertOrderParams) (Order, error) {
	row := q.db.QueryRow(c, insertOrder, arg.UserID, arg.Total, arg.ShippingAddress)
	return scanOrder(row)
}

type InsertOrderItemsParams struct {
	OrderID  uuid.UUID
	BookID   uuid.UUID
	Price    pgtype.Numeric
	Quantity int32
}

func (q *Queries) InsertOrderItems(c context.Context, arg []InsertOrderItemsParams) (int64, error) {
	return q.db.CopyFrom(
		c,
		pgx.Identifier{"order_items"},
		[]string{"order_id", "book_id", "price", "quantity"},
		pgx.CopyFromSlice(len(arg), func(i int) ([]interface{}, error) {
			return []interface{}{
				arg[i].OrderID,
				arg[i].BookID,
				arg[i].Price,
				arg[i].Quantity,
			}, nil
		}),
	)
}

const findOrdersByUserId = `
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1 AND NOT is_deleted
ORDER BY created_at
`

func (q *Queries) FindOrdersByUserId(c context.Context, userID uuid.UUID) ([]Order, error) {
	rows, err := q.db.Query(c, findOrdersByUserId, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

const findOrderById = `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1 AND user_id = $2 AND NOT is_deleted
`

type FindOrderByIdParams struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

// FindOrderById is ownership-scoped: the user id is part of the predicate
// so another user's order surfaces as no rows.
func (q *Queries) FindOrderById(c context.Context, arg FindOrderByIdParams) (Order, error) {
	return scanOrder(q.db.QueryRow(c, findOrderById, arg.ID, arg.UserID))
}

const findOrderItems = `
SELECT oi.id, oi.order_id, oi.book_id, b.title AS book_title, oi.price, oi.quantity, oi.created_at, oi.updated_at
FROM order_items oi
JOIN books b ON b.id = oi.book_id
WHERE oi.order_id = $1
ORDER BY oi.created_at, oi.id
`

type FindOrderItemsRow struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	BookID    uuid.UUID
	BookTitle string
	Price     pgtype.Numeric
	Quantity  int32
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

func (q *Queries) FindOrderItems(c context.Context, orderID uuid.UUID) ([]FindOrderItemsRow, error) {
	rows, err := q.db.Query(c, findOrderItems, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []FindOrderItemsRow
	for rows.Next() {
		var i FindOrderItemsRow
		err := rows.Scan(&i.ID, &i.OrderID, &i.BookID, &i.BookTitle, &i.Price, &i.Quantity, &i.CreatedAt, &i.UpdatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const findOrderItemById = `
SELECT oi.id, oi.order_id, oi.book_id, b.title AS book_title, oi.price, oi.quantity, oi.created_at, oi.updated_at
FROM order_items oi
JOIN orders o ON o.id = oi.order_id
JOIN books b ON b.id = oi.book_id
WHERE oi.id = $1 AND oi.order_id = $2 AND o.user_id = $3 AND NOT o.is_deleted
`

type FindOrderItemByIdParams struct {
	ID      uuid.UUID
	OrderID uuid.UUID
	UserID  uuid.UUID
}

func (q *Queries) FindOrderItemById(
	c context.Context,
	arg FindOrderItemByIdParams,
) (FindOrderItemsRow, error) {
	row := q.db.QueryRow(c, findOrderItemById, arg.ID, arg.OrderID, arg.UserID)
	var i FindOrderItemsRow
	err := row.Scan(&i.ID, &i.OrderID, &i.BookID, &i.BookTitle, &i.Price, &i.Quantity, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const updateOrderStatus = `
UPDATE orders
SET status = $2, updated_at = now()
WHERE id = $1 AND NOT is_deleted
RETURNING ` + orderColumns

type UpdateOrderStatusParams struct {
	ID     uuid.UUID
	Status OrderStatus
}

func (q *Queries) UpdateOrderStatus(c context.Context, arg UpdateOrderStatusParams) (Order, error) {
	return scanOrder(q.db.QueryRow(c, updateOrderStatus, arg.ID, arg.Status))
}
