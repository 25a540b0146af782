package weather

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate checks that every field the rendering layer requires is populated.
// Both the live-API path and the mock path must pass this before a result is
// handed to consumers.
func (w WeatherData) Validate() error {
	return validate.Struct(w)
}
