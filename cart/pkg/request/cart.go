package request

import "github.com/google/uuid"

type AddCartItem struct {
	BookID   uuid.UUID `json:"book_id" validate:"required"`
	Quantity int32     `json:"quantity" validate:"required,min=1,max=10"`
}

type UpdateCartItem struct {
	Quantity int32 `json:"quantity" validate:"required,min=1,max=10"`
}
