package repository

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	bookResponse "github.com/RedArtelerist/OnlineBookStore/book/pkg/response"
	cartResponse "github.com/RedArtelerist/OnlineBookStore/cart/pkg/response"
	categoryResponse "github.com/RedArtelerist/OnlineBookStore/category/pkg/response"
	orderResponse "github.com/RedArtelerist/OnlineBookStore/order/pkg/response"
	userResponse "github.com/RedArtelerist/OnlineBookStore/user/pkg/response"
)

func (u User) Response(roles []string) userResponse.User {
	return userResponse.User{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ShippingAddress: u.ShippingAddress.String,
		Roles:           roles,
		CreatedAt:       u.CreatedAt.Time,
		UpdatedAt:       u.UpdatedAt.Time,
	}
}

func (b Book) Response(categoryIds []uuid.UUID) bookResponse.Book {
	if categoryIds == nil {
		categoryIds = []uuid.UUID{}
	}
	return bookResponse.Book{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Isbn:        b.Isbn,
		Price:       DecimalFromNumeric(b.Price),
		Description: b.Description.String,
		CoverImage:  b.CoverImage.String,
		CategoryIds: categoryIds,
		CreatedAt:   b.CreatedAt.Time,
		UpdatedAt:   b.UpdatedAt.Time,
	}
}

func (c Category) Response() categoryResponse.Category {
	return categoryResponse.Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description.String,
		CreatedAt:   c.CreatedAt.Time,
		UpdatedAt:   c.UpdatedAt.Time,
	}
}

func (f FindCartItemsRow) Response() cartResponse.CartItem {
	price := DecimalFromNumeric(f.BookPrice)
	return cartResponse.CartItem{
		ID:        f.ID,
		BookID:    f.BookID,
		BookTitle: f.BookTitle,
		BookPrice: price,
		Quantity:  f.Quantity,
		Subtotal:  price.Mul(decimal.NewFromInt32(f.Quantity)),
		CreatedAt: f.CreatedAt.Time,
		UpdatedAt: f.UpdatedAt.Time,
	}
}

func (s ShoppingCart) Response(rows []FindCartItemsRow) cartResponse.Cart {
	items := make([]cartResponse.CartItem, 0, len(rows))
	total := decimal.Zero
	for _, row := range rows {
		item := row.Response()
		total = total.Add(item.Subtotal)
		items = append(items, item)
	}
	return cartResponse.Cart{
		ID:        s.ID,
		UserID:    s.ID,
		Items:     items,
		Total:     total,
		CreatedAt: s.CreatedAt.Time,
		UpdatedAt: s.UpdatedAt.Time,
	}
}

func (f FindOrderItemsRow) Response() orderResponse.OrderItem {
	return orderResponse.OrderItem{
		ID:        f.ID,
		BookID:    f.BookID,
		BookTitle: f.BookTitle,
		Price:     DecimalFromNumeric(f.Price),
		Quantity:  f.Quantity,
		CreatedAt: f.CreatedAt.Time,
	}
}

func (o Order) Response(rows []FindOrderItemsRow) orderResponse.Order {
	items := make([]orderResponse.OrderItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.Response())
	}
	return orderResponse.Order{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          string(o.Status),
		Total:           DecimalFromNumeric(o.Total),
		ShippingAddress: o.ShippingAddress,
		Items:           items,
		CreatedAt:       o.CreatedAt.Time,
		UpdatedAt:       o.UpdatedAt.Time,
	}
}
