package repository

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "NEW"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusOnTheWay  OrderStatus = "ON_THE_WAY"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
)

// ParseOrderStatus validates a status value coming from a client. Any valid
// status is accepted as a transition target; no transition graph is
// enforced.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusNew,
		OrderStatusPreparing,
		OrderStatusPending,
		OrderStatusOnTheWay,
		OrderStatusDelivered,
		OrderStatusCompleted,
		OrderStatusCanceled:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

type User struct {
	ID              uuid.UUID
	Email           string
	Password        string
	FirstName       string
	LastName        string
	ShippingAddress pgtype.Text
	IsDeleted       bool
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

type Book struct {
	ID          uuid.UUID
	Title       string
	Author      string
	Isbn        string
	Price       pgtype.Numeric
	Description pgtype.Text
	CoverImage  pgtype.Text
	IsDeleted   bool
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

type Category struct {
	ID          uuid.UUID
	Name        string
	Description pgtype.Text
	IsDeleted   bool
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

type ShoppingCart struct {
	ID        uuid.UUID
	IsDeleted bool
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type CartItem struct {
	ID        uuid.UUID
	CartID    uuid.UUID
	BookID    uuid.UUID
	Quantity  int32
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Status          OrderStatus
	Total           pgtype.Numeric
	ShippingAddress string
	OrderDate       pgtype.Timestamptz
	IsDeleted       bool
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	BookID    uuid.UUID
	Price     pgtype.Numeric
	Quantity  int32
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}
