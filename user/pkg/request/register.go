package request

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

type Register struct {
	Email           string `validate:"required,email"                      json:"email"`
	Password        string `validate:"required,min=8,max=35"               json:"password"`
	RepeatPassword  string `validate:"required,eqfield=Password"           json:"repeat_password"`
	FirstName       string `validate:"required,max=128"                    json:"first_name"`
	LastName        string `validate:"required,max=128"                    json:"last_name"`
	ShippingAddress string `validate:"omitempty,max=256"                   json:"shipping_address"`
}

func (r Register) MarshalZerologObject(e *zerolog.Event) {
	e.Str("email", r.Email).
		Str("first_name", r.FirstName).
		Str("last_name", r.LastName).
		Str("password", "***")
}

func (r Register) MarshalJSON() ([]byte, error) {
	r.Password = "***"
	r.RepeatPassword = "***"
	type R Register
	return json.Marshal(R(r))
}
