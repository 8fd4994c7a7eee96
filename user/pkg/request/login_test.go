package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginMasksPassword(t *testing.T) {
	expectedMap := map[string]string{"email": "email", "password": "***"}
	expected, _ := json.Marshal(expectedMap)
	loginReq := Login{Email: "email", Password: "password"}

	actual, _ := json.Marshal(loginReq)

	assert.JSONEq(t, string(expected), string(actual))
	assert.EqualValues(t, "password", loginReq.Password)
}

func TestRegisterMasksPasswords(t *testing.T) {
	registerReq := Register{
		Email:          "email",
		Password:       "password",
		RepeatPassword: "password",
		FirstName:      "First",
		LastName:       "Last",
	}

	actual, err := json.Marshal(registerReq)
	assert.NoError(t, err)

	decoded := map[string]string{}
	assert.NoError(t, json.Unmarshal(actual, &decoded))
	assert.EqualValues(t, "***", decoded["password"])
	assert.EqualValues(t, "***", decoded["repeat_password"])
	assert.EqualValues(t, "email", decoded["email"])
	assert.EqualValues(t, "password", registerReq.Password)
}
