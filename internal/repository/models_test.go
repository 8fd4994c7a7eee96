package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderStatus(t *testing.T) {
	for _, valid := range []string{
		"NEW", "PREPARING", "PENDING", "ON_THE_WAY", "DELIVERED", "COMPLETED", "CANCELED",
	} {
		status, err := ParseOrderStatus(valid)
		assert.NoError(t, err)
		assert.EqualValues(t, valid, string(status))
	}

	for _, invalid := range []string{"", "new", "SHIPPED", "UNKNOWN"} {
		_, err := ParseOrderStatus(invalid)
		assert.Error(t, err)
	}
}
