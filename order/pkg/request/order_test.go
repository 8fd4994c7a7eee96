package request

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestCreateOrderShippingAddressLength(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		{name: "single character", address: "a", wantErr: false},
		{name: "column width", address: strings.Repeat("a", 256), wantErr: false},
		{name: "over column width", address: strings.Repeat("a", 257), wantErr: true},
		{name: "empty", address: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(CreateOrder{ShippingAddress: tt.address})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
