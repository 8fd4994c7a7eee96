package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	inErrors "github.com/RedArtelerist/OnlineBookStore/internal/errors"
)

func TestStatusCodeFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "not found maps to 404",
			err:      inErrors.NewNotFound("book with id=%s not found", "x"),
			expected: http.StatusNotFound,
		},
		{
			name:     "wrapped not found maps to 404",
			err:      errors.Join(errors.New("outer"), inErrors.NewNotFound("gone")),
			expected: http.StatusNotFound,
		},
		{
			name:     "invalid operation maps to 400",
			err:      inErrors.ErrEmptyCart,
			expected: http.StatusBadRequest,
		},
		{
			name:     "password mismatch maps to 401",
			err:      inErrors.ErrPasswordMismatch,
			expected: http.StatusUnauthorized,
		},
		{
			name:     "missing auth maps to 401",
			err:      inErrors.ErrEmptyAuth,
			expected: http.StatusUnauthorized,
		},
		{
			name:     "forbidden maps to 403",
			err:      inErrors.ErrForbidden,
			expected: http.StatusForbidden,
		},
		{
			name:     "unknown maps to 500",
			err:      errors.New("boom"),
			expected: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualValues(t, tt.expected, StatusCodeFromError(tt.err))
		})
	}
}
