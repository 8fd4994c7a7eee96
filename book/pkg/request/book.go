package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateBook struct {
	Title       string          `validate:"required,max=128"  json:"title"`
	Author      string          `validate:"required,max=128"  json:"author"`
	Isbn        string          `validate:"required,max=128"  json:"isbn"`
	Price       decimal.Decimal `validate:"required"          json:"price"`
	Description string          `validate:"omitempty,max=1024" json:"description"`
	CoverImage  string          `validate:"omitempty,max=128" json:"cover_image"`
	CategoryIds []uuid.UUID     `validate:"required"          json:"category_ids"`
}

// UpdateBook is a patch: nil fields leave the stored value unchanged.
type UpdateBook struct {
	Title       *string          `validate:"omitempty,max=128"  json:"title"`
	Author      *string          `validate:"omitempty,max=128"  json:"author"`
	Isbn        *string          `validate:"omitempty,max=128"  json:"isbn"`
	Price       *decimal.Decimal `validate:"omitempty"          json:"price"`
	Description *string          `validate:"omitempty,max=1024" json:"description"`
	CoverImage  *string          `validate:"omitempty,max=128"  json:"cover_image"`
	CategoryIds []uuid.UUID      `validate:"omitempty"          json:"category_ids"`
}

type SearchBooks struct {
	Title    string           `validate:"omitempty,max=128" json:"title"`
	Authors  []string         `validate:"omitempty"         json:"authors"`
	MinPrice *decimal.Decimal `validate:"omitempty"         json:"min_price"`
	MaxPrice *decimal.Decimal `validate:"omitempty"         json:"max_price"`
	Page     int32            `validate:"omitempty,gte=1"   json:"page"`
	Limit    int32            `validate:"omitempty,gte=1"   json:"limit"`
}
