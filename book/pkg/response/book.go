package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Book struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Isbn        string          `json:"isbn"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	CoverImage  string          `json:"cover_image,omitempty"`
	CategoryIds []uuid.UUID     `json:"category_ids"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
