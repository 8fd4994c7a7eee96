package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMasksRegisterBody(t *testing.T) {
	body := `{"email":"alice@mail.com","password":"hunter2","repeat_password":"hunter2"}`

	var logged bytes.Buffer
	logger := zerolog.New(&logged)

	var received string
	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		received = string(raw)
		zerolog.Ctx(r.Context()).Info().Msg("handled")
	}))

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req = req.WithContext(logger.WithContext(req.Context()))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, body, received)
	assert.NotContains(t, logged.String(), "hunter2")
	assert.Contains(t, logged.String(), `"password":"****"`)
	assert.Contains(t, logged.String(), `"repeat_password":"****"`)
}

func TestMaskPasswords(t *testing.T) {
	tests := []struct {
		name     string
		body     map[string]interface{}
		expected map[string]interface{}
	}{
		{
			name: "login body",
			body: map[string]interface{}{
				"email":    "alice@mail.com",
				"password": "hunter2",
			},
			expected: map[string]interface{}{
				"email":    "alice@mail.com",
				"password": "****",
			},
		},
		{
			name: "register body",
			body: map[string]interface{}{
				"email":           "alice@mail.com",
				"password":        "hunter2",
				"repeat_password": "hunter2",
			},
			expected: map[string]interface{}{
				"email":           "alice@mail.com",
				"password":        "****",
				"repeat_password": "****",
			},
		},
		{
			name:     "body without credentials",
			body:     map[string]interface{}{"quantity": float64(3)},
			expected: map[string]interface{}{"quantity": float64(3)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			maskPasswords(tt.body)
			assert.EqualValues(t, tt.expected, tt.body)
		})
	}
}
