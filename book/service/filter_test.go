package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/RedArtelerist/OnlineBookStore/book/pkg/request"
)

func TestHasFilters(t *testing.T) {
	price := decimal.RequireFromString("9.99")

	tests := []struct {
		name     string
		param    request.SearchBooks
		expected bool
	}{
		{name: "plain listing", param: request.SearchBooks{Page: 2, Limit: 10}, expected: false},
		{name: "title filter", param: request.SearchBooks{Title: "go"}, expected: true},
		{name: "author filter", param: request.SearchBooks{Authors: []string{"Kernighan"}}, expected: true},
		{name: "min price filter", param: request.SearchBooks{MinPrice: &price}, expected: true},
		{name: "max price filter", param: request.SearchBooks{MaxPrice: &price}, expected: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualValues(t, tt.expected, hasFilters(tt.param))
		})
	}
}
